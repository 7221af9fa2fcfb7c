package field

import "strings"

// Label hooks.

// ForLabel renders <label for="NAME">LABEL</label>.
func ForLabel(f *Field) string {
	return `<label for="` + f.Name + `">` + f.Label + `</label>`
}

// BareLabel renders a label without a for attribute. Used by kinds whose
// label sits to the right of the control.
func BareLabel(f *Field) string {
	return `<label>` + f.Label + `</label>`
}

// CellLabel renders the label followed by a table cell boundary so the
// control lands in the next cell of a table row.
func CellLabel(f *Field) string {
	return `<label class="edit">` + f.Label + `</label></td><td>`
}

// NoLabel renders nothing.
func NoLabel(*Field) string {
	return ""
}

// Attribute hooks.

// StandardAttrs renders name, id, class and disabled, in that order. id and
// class are skipped when empty.
func StandardAttrs(f *Field) string {
	var builder strings.Builder
	writeAttr(&builder, "name", f.Name)
	writeIdentity(&builder, f)
	if f.Disabled {
		writeAttr(&builder, "disabled", "disabled")
	}
	return builder.String()
}

// FieldsetAttrs renders id and class only; name and disabled are not valid
// on a fieldset.
func FieldsetAttrs(f *Field) string {
	var builder strings.Builder
	writeIdentity(&builder, f)
	return builder.String()
}

// MultipleAttrs renders StandardAttrs followed by multiple="multiple".
func MultipleAttrs(f *Field) string {
	return StandardAttrs(f) + ` multiple="multiple"`
}

// ImageAttrs renders src (from the value) and alt (from the label) ahead of
// StandardAttrs.
func ImageAttrs(f *Field) string {
	var builder strings.Builder
	writeAttr(&builder, "src", f.Value)
	writeAttr(&builder, "alt", f.Label)
	builder.WriteString(StandardAttrs(f))
	return builder.String()
}

// CheckboxAttrs renders StandardAttrs plus checked="checked" when the value
// is "true" or "1".
func CheckboxAttrs(f *Field) string {
	attrs := StandardAttrs(f)
	if f.Value == "true" || f.Value == "1" {
		attrs += ` checked="checked"`
	}
	return attrs
}

// RadioAttrs renders name, checked, disabled and an explicit value equal to
// the escaped label: a radio submits its label, not the field default. When
// decode is set the stored value is unescaped before it is compared with the
// label.
func RadioAttrs(decode bool) Hook {
	return func(f *Field) string {
		var builder strings.Builder
		writeAttr(&builder, "name", f.Name)
		if selected(f, decode) {
			writeAttr(&builder, "checked", "checked")
		}
		if f.Disabled {
			writeAttr(&builder, "disabled", "disabled")
		}
		writeAttr(&builder, "value", Escape(f.Label))
		return builder.String()
	}
}

// OptionAttrs renders selected="selected" when the value matches the label.
func OptionAttrs(decode bool) Hook {
	return func(f *Field) string {
		if selected(f, decode) {
			return ` selected="selected"`
		}
		return ""
	}
}

func selected(f *Field, decode bool) bool {
	if decode {
		return f.DecodedValue() == f.Label
	}
	return f.Value == f.Label
}

func writeIdentity(builder *strings.Builder, f *Field) {
	if f.ID != "" {
		writeAttr(builder, "id", f.ID)
	}
	if f.Class != "" {
		writeAttr(builder, "class", f.Class)
	}
}

func writeAttr(builder *strings.Builder, name, value string) {
	builder.WriteByte(' ')
	builder.WriteString(name)
	builder.WriteString(`="`)
	builder.WriteString(value)
	builder.WriteByte('"')
}

// Content hooks.

// NoContent renders nothing.
func NoContent(*Field) string {
	return ""
}

// ValueContent renders the stored value as the element body.
func ValueContent(f *Field) string {
	return f.Value
}

// LabelContent renders the label as the element body (option text, button
// caption).
func LabelContent(f *Field) string {
	return f.Label
}

// ChildrenContent concatenates the rendered children.
func ChildrenContent(f *Field) string {
	var builder strings.Builder
	for _, child := range f.Children {
		builder.WriteString(child.Render())
	}
	return builder.String()
}

// ListContent wraps each rendered child in an ordered list item.
func ListContent(f *Field) string {
	var builder strings.Builder
	builder.WriteString("<ol>")
	for _, child := range f.Children {
		builder.WriteString("<li>")
		builder.WriteString(child.Render())
		builder.WriteString("</li>")
	}
	builder.WriteString("</ol>")
	return builder.String()
}

// Layout hooks.

// LabelFirst renders the label followed by the tag.
func LabelFirst(f *Field) string {
	return f.MakeLabel() + f.MakeTag()
}

// TagFirst renders the tag followed by the label.
func TagFirst(f *Field) string {
	return f.MakeTag() + f.MakeLabel()
}

// TagOnly renders the tag without any label.
func TagOnly(f *Field) string {
	return f.MakeTag()
}

// CellCheckbox renders the skin label in the leading cell, then the checkbox
// and a bare trailing label.
func CellCheckbox(f *Field) string {
	return f.MakeLabel() + f.MakeTag() + BareLabel(f)
}
