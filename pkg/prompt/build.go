package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/resolver"
)

// Build asks for every attribute of a field and returns the matching resolver
// request. Options are only asked for composite kinds; checkboxes ask for a
// checked state instead of a free-form value.
func Build(ctx context.Context, driver Driver, namespace string) (resolver.Request, error) {
	if driver == nil {
		return resolver.Request{}, errors.New("prompt: driver is nil")
	}

	kinds := field.Kinds()
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = kind.String()
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:  "Field kind",
		Options:  names,
		PageSize: len(names),
	})
	if err != nil {
		return resolver.Request{}, err
	}
	if idx < 0 || idx >= len(kinds) {
		return resolver.Request{}, field.ErrUnknownKind
	}
	kind := kinds[idx]

	req := resolver.Request{
		Namespace: namespace,
		Kind:      kind.Code(),
	}

	if req.Label, err = driver.Input(ctx, InputConfig{Message: "Label"}); err != nil {
		return resolver.Request{}, err
	}
	name, err := driver.Input(ctx, InputConfig{
		Message:   "Name",
		Help:      "Form parameter name; also used as the element id.",
		Validator: requireText,
	})
	if err != nil {
		return resolver.Request{}, err
	}
	req.Name = strings.TrimSpace(name)
	req.ID = req.Name

	if kind.Composite() {
		options, err := driver.TextArea(ctx, TextAreaConfig{
			Message: "Options (one per line)",
		})
		if err != nil {
			return resolver.Request{}, err
		}
		req.Options = strings.TrimRight(options, "\n")
	}

	switch kind {
	case field.KindCheckbox:
		checked, err := driver.Confirm(ctx, ConfirmConfig{Message: "Checked?"})
		if err != nil {
			return resolver.Request{}, err
		}
		if checked {
			req.Value = "true"
		}
	case field.KindTextarea:
		if req.Value, err = driver.TextArea(ctx, TextAreaConfig{Message: "Value"}); err != nil {
			return resolver.Request{}, err
		}
	default:
		if req.Value, err = driver.Input(ctx, InputConfig{Message: "Value"}); err != nil {
			return resolver.Request{}, err
		}
	}

	if req.Disabled, err = driver.Confirm(ctx, ConfirmConfig{Message: "Disabled?"}); err != nil {
		return resolver.Request{}, err
	}
	if req.Required, err = driver.Confirm(ctx, ConfirmConfig{Message: "Required?"}); err != nil {
		return resolver.Request{}, err
	}
	return req, nil
}

func requireText(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}
