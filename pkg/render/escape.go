package render

import "strings"

// htmlEscaper replaces the five characters with HTML entity meaning.
// The apostrophe uses the numeric form so fragments are safe inside
// single-quoted attributes as well.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML entity-escapes user-supplied text before interpolation into a
// markup fragment. Applied to every free-text field; numeric and enum
// fields pass through unescaped.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
