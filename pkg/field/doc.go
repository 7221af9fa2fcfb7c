// Package field renders HTML form fields. A Field is a plain value whose
// markup comes from a Variant: four hooks (label, attributes, content,
// layout) plus a flag for the generic value attribute. Skins assign a
// Variant to every Kind, and the Registry looks skins up by namespace.
//
// Markup is assembled in a fixed order. MakeLabel and MakeTag are joined by
// the layout hook; MakeTag emits a self-closing <input type="KIND"> for input
// backed kinds and an element wrapping MakeContent otherwise. Labels and
// names are written verbatim; values are expected to be escaped already.
package field
