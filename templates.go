package formfield

import (
	"io/fs"

	"github.com/goliatone/go-formfield/pkg/layout"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the layout package directly.
func EmbeddedTemplates() fs.FS {
	return layout.TemplatesFS()
}
