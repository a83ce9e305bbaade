// Package render produces the user-facing views of a reconstructed
// class model: C++-style declaration text, JSON metadata, an HTML
// report, and diagnostic dumps. Renderers walk the assembled model in
// its canonical order only; no map iteration reaches output.
package render

import "strings"

// htmlEscape escapes a string for HTML text content.
func htmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// CleanLibName strips one leading "lib" prefix from a library base name:
// "libgame" becomes "game".
func CleanLibName(name string) string {
	if strings.HasPrefix(name, "lib") && len(name) > len("lib") {
		return name[len("lib"):]
	}
	return name
}
