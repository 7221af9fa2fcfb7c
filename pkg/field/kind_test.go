package field

import (
	"errors"
	"testing"
)

func TestKindFromCode_Table(t *testing.T) {
	want := []Kind{
		KindText, KindTextarea, KindRadioGroup, KindSelect, KindCheckbox,
		KindMultiselect, KindFile, KindHidden, KindPassword, KindImage,
		KindReset, KindButton, KindSubmit, KindRadio, KindOption,
	}
	for code, expected := range want {
		got, ok := KindFromCode(code)
		if !ok || got != expected {
			t.Fatalf("code %d: want %s, got %s (ok=%v)", code, expected, got, ok)
		}
		if got.Code() != code {
			t.Fatalf("kind %s: want code %d, got %d", got, code, got.Code())
		}
	}

	for _, code := range []int{-1, 15, 99} {
		got, ok := KindFromCode(code)
		if ok || got != KindText {
			t.Fatalf("code %d: expected text fallback, got %s (ok=%v)", code, got, ok)
		}
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"select":      KindSelect,
		" RadioGroup": KindRadioGroup,
		"3":           KindSelect,
		"14":          KindOption,
	}
	for input, want := range cases {
		got, err := ParseKind(input)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseKind(%q): want %s, got %s", input, want, got)
		}
	}

	for _, input := range []string{"", "nope", "15"} {
		if _, err := ParseKind(input); !errors.Is(err, ErrUnknownKind) {
			t.Fatalf("ParseKind(%q): expected ErrUnknownKind, got %v", input, err)
		}
	}
}

func TestKind_TagAndChildren(t *testing.T) {
	tags := map[Kind]string{
		KindTextarea:    TagTextarea,
		KindRadioGroup:  TagFieldset,
		KindSelect:      TagSelect,
		KindMultiselect: TagSelect,
		KindOption:      TagOption,
		KindRadio:       TagInput,
		KindImage:       TagInput,
		KindText:        TagInput,
	}
	for kind, want := range tags {
		if got := kind.Tag(); got != want {
			t.Fatalf("%s: want tag %s, got %s", kind, want, got)
		}
	}

	children := map[Kind]Kind{
		KindRadioGroup:  KindRadio,
		KindSelect:      KindOption,
		KindMultiselect: KindOption,
	}
	for _, kind := range Kinds() {
		child, ok := kind.ChildKind()
		want, composite := children[kind]
		if ok != composite || child != want {
			t.Fatalf("%s: want child %q (composite=%v), got %q (ok=%v)", kind, want, composite, child, ok)
		}
		if kind.Composite() != composite {
			t.Fatalf("%s: composite mismatch", kind)
		}
	}
}
