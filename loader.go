package formfield

import (
	"context"

	"github.com/goliatone/go-formfield/pkg/document"
	"github.com/goliatone/go-formfield/pkg/openapi"
)

// LoadDocument reads a YAML or JSON form document from disk.
func LoadDocument(path string) (document.Document, error) {
	return document.LoadFile(path)
}

// ImportOpenAPI converts a component schema of an OpenAPI document into a
// form document.
func ImportOpenAPI(ctx context.Context, data []byte, schema string, options ...openapi.Option) (document.Document, error) {
	return openapi.Import(ctx, data, schema, options...)
}
