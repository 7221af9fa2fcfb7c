package field

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a renderable field type.
type Kind string

// Built-in field kinds. The order of kindCodes below is the public numeric
// code table and must not change.
const (
	KindText        Kind = "text"
	KindTextarea    Kind = "textarea"
	KindRadioGroup  Kind = "radiogroup"
	KindSelect      Kind = "select"
	KindCheckbox    Kind = "checkbox"
	KindMultiselect Kind = "multiselect"
	KindFile        Kind = "file"
	KindHidden      Kind = "hidden"
	KindPassword    Kind = "password"
	KindImage       Kind = "image"
	KindReset       Kind = "reset"
	KindButton      Kind = "button"
	KindSubmit      Kind = "submit"
	KindRadio       Kind = "radio"
	KindOption      Kind = "option"
)

var kindCodes = [...]Kind{
	KindText,
	KindTextarea,
	KindRadioGroup,
	KindSelect,
	KindCheckbox,
	KindMultiselect,
	KindFile,
	KindHidden,
	KindPassword,
	KindImage,
	KindReset,
	KindButton,
	KindSubmit,
	KindRadio,
	KindOption,
}

// Tag names used by the built-in kinds.
const (
	TagInput    = "input"
	TagTextarea = "textarea"
	TagFieldset = "fieldset"
	TagSelect   = "select"
	TagOption   = "option"
)

// KindFromCode maps a numeric kind code to its Kind. Codes outside the table
// resolve to KindText with ok=false so callers can report the fallback.
func KindFromCode(code int) (kind Kind, ok bool) {
	if code < 0 || code >= len(kindCodes) {
		return KindText, false
	}
	return kindCodes[code], true
}

// ParseKind accepts either a kind name ("select") or its numeric code ("3").
// Unlike KindFromCode it does not fall back: unknown input is an error.
func ParseKind(raw string) (Kind, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty kind", ErrUnknownKind)
	}
	if code, err := strconv.Atoi(trimmed); err == nil {
		kind, ok := KindFromCode(code)
		if !ok {
			return "", fmt.Errorf("%w: code %d", ErrUnknownKind, code)
		}
		return kind, nil
	}
	for _, kind := range kindCodes {
		if string(kind) == trimmed {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// Kinds returns the built-in kinds in code order.
func Kinds() []Kind {
	out := make([]Kind, len(kindCodes))
	copy(out, kindCodes[:])
	return out
}

// Code returns the numeric code of a built-in kind, or -1.
func (k Kind) Code() int {
	for idx, kind := range kindCodes {
		if kind == k {
			return idx
		}
	}
	return -1
}

// Tag returns the HTML element backing the kind.
func (k Kind) Tag() string {
	switch k {
	case KindTextarea:
		return TagTextarea
	case KindRadioGroup:
		return TagFieldset
	case KindSelect, KindMultiselect:
		return TagSelect
	case KindOption:
		return TagOption
	default:
		return TagInput
	}
}

// Composite reports whether the kind renders child fields.
func (k Kind) Composite() bool {
	_, ok := k.ChildKind()
	return ok
}

// ChildKind returns the kind used for the children of a composite kind.
func (k Kind) ChildKind() (Kind, bool) {
	switch k {
	case KindRadioGroup:
		return KindRadio, true
	case KindSelect, KindMultiselect:
		return KindOption, true
	default:
		return "", false
	}
}

func (k Kind) String() string {
	return string(k)
}
