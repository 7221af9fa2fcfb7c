package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/document"
	"github.com/goliatone/go-formfield/pkg/field"
)

// KindExtension overrides the inferred kind of a property. It accepts a kind
// name or a numeric code.
const KindExtension = "x-formfield-kind"

// ErrSchemaNotFound is returned when the requested component schema is absent.
var ErrSchemaNotFound = errors.New("openapi: schema not found")

// Option customises Import.
type Option func(*options)

type options struct {
	namespace      string
	allowExternal  bool
	validateSchema bool
}

// WithNamespace sets the namespace of the produced document.
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = strings.TrimSpace(namespace)
	}
}

// WithExternalRefs allows the loader to follow external references.
func WithExternalRefs(allow bool) Option {
	return func(o *options) {
		o.allowExternal = allow
	}
}

// WithValidation validates the whole OpenAPI document before import.
func WithValidation(validate bool) Option {
	return func(o *options) {
		o.validateSchema = validate
	}
}

// Import loads an OpenAPI document and converts the properties of the
// component schema named schemaName into a form document.
func Import(ctx context.Context, data []byte, schemaName string, opts ...Option) (document.Document, error) {
	if err := ctx.Err(); err != nil {
		return document.Document{}, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return document.Document{}, errors.New("openapi: document payload is empty")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: cfg.allowExternal,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return document.Document{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validateSchema {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return document.Document{}, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	if spec.Components == nil {
		return document.Document{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}
	ref, ok := spec.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return document.Document{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}
	schema := ref.Value

	doc := document.Document{
		Source:    "openapi:" + schemaName,
		Title:     strings.TrimSpace(schema.Title),
		Namespace: cfg.namespace,
	}
	if doc.Title == "" {
		doc.Title = schemaName
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		entry, err := convertProperty(name, prop.Value)
		if err != nil {
			return document.Document{}, fmt.Errorf("openapi: %s.%s: %w", schemaName, name, err)
		}
		entry.Required = required[name]
		doc.Fields = append(doc.Fields, entry)
	}
	return doc, nil
}

func convertProperty(name string, prop *openapi3.Schema) (document.Entry, error) {
	kind, err := propertyKind(prop)
	if err != nil {
		return document.Entry{}, err
	}

	entry := document.Entry{
		Label: strings.TrimSpace(prop.Title),
		Code:  kind.Code(),
		Name:  name,
		ID:    name,
	}
	if entry.Label == "" {
		entry.Label = name
	}
	if prop.Default != nil {
		entry.Value = scalarString(prop.Default)
	}

	if kind.Composite() {
		enum := prop.Enum
		if kind == field.KindMultiselect && prop.Items != nil && prop.Items.Value != nil {
			enum = prop.Items.Value.Enum
		}
		for _, value := range enum {
			entry.Options = append(entry.Options, scalarString(value))
		}
	}
	return entry, nil
}

func propertyKind(prop *openapi3.Schema) (field.Kind, error) {
	if raw, ok := prop.Extensions[KindExtension]; ok {
		return field.ParseKind(scalarString(raw))
	}

	switch schemaType(prop.Type) {
	case openapi3.TypeBoolean:
		return field.KindCheckbox, nil
	case openapi3.TypeArray:
		if prop.Items != nil && prop.Items.Value != nil && len(prop.Items.Value.Enum) > 0 {
			return field.KindMultiselect, nil
		}
		return field.KindText, nil
	case openapi3.TypeString:
		if len(prop.Enum) > 0 {
			return field.KindSelect, nil
		}
		switch strings.ToLower(prop.Format) {
		case "password":
			return field.KindPassword, nil
		case "binary":
			return field.KindFile, nil
		case "textarea":
			return field.KindTextarea, nil
		}
	}
	return field.KindText, nil
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
