package field

import "strings"

// Hook renders one step of a field's markup (label, attributes, content or
// the final layout).
type Hook func(f *Field) string

// Variant is the set of hooks a skin assigns to a kind. Render composes them
// in a fixed order: MakeLabel, MakeAttrs, MakeContent, MakeTag, then Layout
// decides how label and tag are joined.
type Variant struct {
	Label   Hook
	Attrs   Hook
	Content Hook
	Layout  Hook
	// Value controls whether input tags carry the generic value attribute.
	// Kinds that derive other attributes from the value (radio, checkbox,
	// image) leave it off.
	Value bool
}

// Attributes carries the caller supplied data for a field. Value must
// already be markup escaped; see Escape.
type Attributes struct {
	Label    string
	Value    string
	Name     string
	ID       string
	Class    string
	Disabled bool
	// Required is stored for callers but never affects rendering.
	Required bool
}

// Field is a single renderable form field. Composite kinds (radiogroup,
// select, multiselect) hold their option or radio children.
type Field struct {
	Kind Kind
	Tag  string

	Label    string
	Value    string
	Name     string
	ID       string
	Class    string
	Disabled bool
	Required bool

	Children []*Field

	variant Variant
}

// New builds a field of the given kind using the supplied variant. Children
// are only attached for composite kinds; leaf kinds ignore them.
func New(kind Kind, variant Variant, attrs Attributes, children ...*Field) *Field {
	f := &Field{
		Kind:     kind,
		Tag:      kind.Tag(),
		Label:    attrs.Label,
		Value:    attrs.Value,
		Name:     attrs.Name,
		ID:       attrs.ID,
		Class:    attrs.Class,
		Disabled: attrs.Disabled,
		Required: attrs.Required,
		variant:  variant,
	}
	if kind.Composite() && len(children) > 0 {
		f.Children = append([]*Field(nil), children...)
	}
	return f
}

// DecodedValue returns the value with markup entities decoded.
func (f *Field) DecodedValue() string {
	return Unescape(f.Value)
}

// MakeLabel runs the label hook.
func (f *Field) MakeLabel() string {
	return runHook(f.variant.Label, f, ForLabel)
}

// MakeAttrs runs the attribute hook. The result starts with a space when
// non-empty.
func (f *Field) MakeAttrs() string {
	return runHook(f.variant.Attrs, f, StandardAttrs)
}

// MakeContent runs the content hook.
func (f *Field) MakeContent() string {
	return runHook(f.variant.Content, f, NoContent)
}

// MakeTag assembles the element itself. Input tags are self-closing and
// carry a type attribute; every other tag wraps MakeContent.
func (f *Field) MakeTag() string {
	var builder strings.Builder
	builder.WriteByte('<')
	builder.WriteString(f.Tag)

	if f.Tag == TagInput {
		builder.WriteString(` type="`)
		builder.WriteString(string(f.Kind))
		builder.WriteByte('"')
		builder.WriteString(f.MakeAttrs())
		if f.variant.Value && f.Value != "" {
			builder.WriteString(` value="`)
			builder.WriteString(f.Value)
			builder.WriteByte('"')
		}
		builder.WriteString(" />")
		return builder.String()
	}

	builder.WriteString(f.MakeAttrs())
	builder.WriteByte('>')
	builder.WriteString(f.MakeContent())
	builder.WriteString("</")
	builder.WriteString(f.Tag)
	builder.WriteByte('>')
	return builder.String()
}

// Render returns the field markup. Rendering does not mutate the field, so
// repeated calls return identical output.
func (f *Field) Render() string {
	if f == nil {
		return ""
	}
	return runHook(f.variant.Layout, f, LabelFirst)
}

func (f *Field) String() string {
	return f.Render()
}

func runHook(hook Hook, f *Field, fallback Hook) string {
	if hook == nil {
		return fallback(f)
	}
	return hook(f)
}
