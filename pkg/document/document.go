package document

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/resolver"
)

// Document is a list of fields rendered with one skin.
type Document struct {
	// Source records where the document was loaded from (file path or
	// "inline").
	Source    string
	Title     string
	Namespace string
	Fields    []Entry
}

// Entry describes one field of a document.
type Entry struct {
	Label string
	// Code is the numeric kind code handed to the resolver. Named kinds are
	// converted on load; unknown numeric codes are kept so the resolver
	// reports its text fallback.
	Code     int
	Value    string
	Options  []string
	Required bool
	Name     string
	ID       string
	Class    string
	Disabled bool
}

// Kind returns the kind the entry renders as.
func (e Entry) Kind() field.Kind {
	kind, _ := field.KindFromCode(e.Code)
	return kind
}

// Request converts the entry into a resolver request for namespace.
func (e Entry) Request(namespace string) resolver.Request {
	return resolver.Request{
		Namespace: namespace,
		Label:     e.Label,
		Kind:      e.Code,
		Value:     e.Value,
		Options:   strings.Join(e.Options, "\n"),
		Required:  e.Required,
		Name:      e.Name,
		ID:        e.ID,
		Class:     e.Class,
		Disabled:  e.Disabled,
	}
}

// Requests converts every entry using the document namespace.
func (d Document) Requests() []resolver.Request {
	out := make([]resolver.Request, 0, len(d.Fields))
	for _, entry := range d.Fields {
		out = append(out, entry.Request(d.Namespace))
	}
	return out
}

// RenderAll resolves and renders every entry in order.
func RenderAll(r *resolver.Resolver, doc Document) ([]string, error) {
	requests := doc.Requests()
	out := make([]string, 0, len(requests))
	for idx, req := range requests {
		markup, err := r.Render(req)
		if err != nil {
			return nil, fmt.Errorf("document: %s field %d (%s): %w", doc.Source, idx, req.Name, err)
		}
		out = append(out, markup)
	}
	return out, nil
}
