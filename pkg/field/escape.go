package field

import (
	"html"
	"strings"
)

var escaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`<`, "&lt;",
	`>`, "&gt;",
)

// Escape encodes &, ", < and > so the value can be embedded in a double
// quoted attribute or element body. Single quotes are left as-is.
func Escape(value string) string {
	return escaper.Replace(value)
}

// Unescape decodes HTML entities, the inverse of Escape.
func Unescape(value string) string {
	return html.UnescapeString(value)
}
