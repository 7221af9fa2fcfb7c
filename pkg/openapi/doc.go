// Package openapi converts OpenAPI component schemas into form documents.
//
// Each property of the selected schema becomes one document entry. Kinds are
// inferred from the property type and format and may be overridden with the
// x-formfield-kind extension.
package openapi
