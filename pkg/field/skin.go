package field

import "sort"

// Built-in skin names.
const (
	SkinFrontend = "Frontend"
	SkinBackend  = "Backend"
)

// Skin is a named family of variants, one per kind.
type Skin struct {
	Name string
	// ChildSkin names the skin used to resolve the children of composite
	// kinds. Empty means the skin itself.
	ChildSkin string
	Variants  map[Kind]Variant
}

// Variant returns the hooks registered for kind.
func (s *Skin) Variant(kind Kind) (Variant, bool) {
	if s == nil {
		return Variant{}, false
	}
	variant, ok := s.Variants[kind]
	return variant, ok
}

// Kinds lists the kinds the skin can render, in code order.
func (s *Skin) Kinds() []Kind {
	if s == nil {
		return nil
	}
	kinds := make([]Kind, 0, len(s.Variants))
	for kind := range s.Variants {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].Code() < kinds[j].Code()
	})
	return kinds
}

// Derive copies the skin under a new name, passing every variant through
// override. The child skin is carried over unchanged.
func (s *Skin) Derive(name string, override func(Kind, Variant) Variant) *Skin {
	derived := &Skin{
		Name:      name,
		ChildSkin: s.ChildSkin,
		Variants:  make(map[Kind]Variant, len(s.Variants)),
	}
	for kind, variant := range s.Variants {
		if override != nil {
			variant = override(kind, variant)
		}
		derived.Variants[kind] = variant
	}
	return derived
}

// FrontendSkin returns the plain skin: labels bound with for="NAME", radio and
// checkbox labels on the right, and no labels for options, hidden inputs,
// images and buttons.
func FrontendSkin() *Skin {
	standard := Variant{
		Label:   ForLabel,
		Attrs:   StandardAttrs,
		Content: NoContent,
		Layout:  LabelFirst,
		Value:   true,
	}

	textarea := standard
	textarea.Content = ValueContent

	unlabeled := standard
	unlabeled.Label = NoLabel

	caption := unlabeled
	caption.Content = LabelContent

	radiogroup := standard
	radiogroup.Attrs = FieldsetAttrs
	radiogroup.Content = ListContent

	selectVariant := standard
	selectVariant.Content = ChildrenContent

	multiselect := selectVariant
	multiselect.Attrs = MultipleAttrs

	return &Skin{
		Name: SkinFrontend,
		Variants: map[Kind]Variant{
			KindText:        standard,
			KindTextarea:    textarea,
			KindRadioGroup:  radiogroup,
			KindSelect:      selectVariant,
			KindMultiselect: multiselect,
			KindFile:        standard,
			KindPassword:    standard,
			KindHidden:      unlabeled,
			KindReset:       caption,
			KindButton:      caption,
			KindSubmit:      caption,
			KindCheckbox: {
				Label:   ForLabel,
				Attrs:   CheckboxAttrs,
				Content: NoContent,
				Layout:  TagFirst,
			},
			KindImage: {
				Label:   NoLabel,
				Attrs:   ImageAttrs,
				Content: NoContent,
				Layout:  TagOnly,
			},
			KindRadio: {
				Label:   BareLabel,
				Attrs:   RadioAttrs(true),
				Content: NoContent,
				Layout:  TagFirst,
			},
			KindOption: {
				Label:   NoLabel,
				Attrs:   OptionAttrs(true),
				Content: LabelContent,
				Layout:  LabelFirst,
			},
		},
	}
}

// BackendSkin returns the table-row skin. Labels close into a new table cell
// so each field fills one row; radio and option compare the stored value
// without decoding it. Composite children are resolved with the frontend
// skin.
func BackendSkin() *Skin {
	backend := FrontendSkin().Derive(SkinBackend, func(kind Kind, variant Variant) Variant {
		switch kind {
		case KindImage:
			// images never carry a label
		case KindRadio:
			variant.Attrs = RadioAttrs(false)
		case KindOption:
			variant.Attrs = OptionAttrs(false)
		case KindCheckbox:
			variant.Label = CellLabel
			variant.Layout = CellCheckbox
		default:
			variant.Label = CellLabel
		}
		return variant
	})
	backend.ChildSkin = SkinFrontend
	return backend
}
