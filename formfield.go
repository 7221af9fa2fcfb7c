// Package formfield renders HTML form fields from a kind code and a skin
// namespace.
//
// The root package re-exports the common entry points so callers can render
// a field without importing the sub-packages:
//
//	markup, err := formfield.Render(formfield.Request{
//		Namespace: "FooForms",
//		Label:     "Test field",
//		Kind:      0,
//		Value:     "Test text",
//		Name:      "texttest",
//	})
package formfield

import (
	"context"
	"sync"

	"github.com/goliatone/go-formfield/pkg/document"
	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/resolver"
)

// Request aliases resolver.Request.
type Request = resolver.Request

// Field aliases field.Field.
type Field = field.Field

var (
	defaultOnce     sync.Once
	defaultResolver *resolver.Resolver
)

func shared() *resolver.Resolver {
	defaultOnce.Do(func() {
		defaultResolver = resolver.New()
	})
	return defaultResolver
}

// NewResolver exposes the resolver constructor from the top-level module.
func NewResolver(options ...resolver.Option) *resolver.Resolver {
	return resolver.New(options...)
}

// Resolve builds a field tree with the default skins.
func Resolve(req Request) (*Field, error) {
	return shared().Resolve(req)
}

// Render builds and renders a field with the default skins.
func Render(req Request) (string, error) {
	return shared().Render(req)
}

// RenderDocument renders every field of doc into a full HTML page.
func RenderDocument(ctx context.Context, doc document.Document, options ...layout.Option) ([]byte, error) {
	engine, err := layout.New(options...)
	if err != nil {
		return nil, err
	}
	return engine.Render(ctx, doc)
}
