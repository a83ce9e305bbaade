package vtable

import (
	"sort"
	"strings"
)

// Confidence tags how an inheritance edge was obtained. Everything this
// package produces is Heuristic; Verified exists so consumers of the
// model can express the distinction without inventing their own tag.
type Confidence uint8

const (
	Heuristic Confidence = iota
	Verified
)

func (c Confidence) String() string {
	if c == Verified {
		return "verified"
	}
	return "heuristic"
}

// Edge is one directed base-to-derived relation.
type Edge struct {
	Base       string
	Derived    string
	Confidence Confidence
}

// InferInheritance derives base-to-derived lists from typeinfo artifact
// phrasing: a typeinfo line whose second-to-last whitespace token is
// "for" (and which is not a "typeinfo name for" auxiliary line)
// contributes its last token as a base-class name for the owning class.
//
// This is a convention over one demangler's phrasing of typeinfo
// auxiliary symbols; other demanglers may phrase these differently and
// silently yield zero edges. Edges are best-effort, never verified.
// Classes are visited in sorted order so the derived lists are stable.
func InferInheritance(info Info) map[string][]string {
	inheritance := make(map[string][]string)
	classes := info.Classes()
	sort.Strings(classes)

	for _, cls := range classes {
		for _, a := range info[cls] {
			if a.Kind != TypeInfo {
				continue
			}
			if strings.Contains(a.Line, "typeinfo name for") {
				continue
			}
			parts := strings.Fields(a.Line)
			if len(parts) < 4 || parts[len(parts)-2] != "for" {
				continue
			}
			base := parts[len(parts)-1]
			inheritance[base] = append(inheritance[base], cls)
		}
	}
	return inheritance
}

// Edges flattens an inheritance mapping into tagged edges, ordered by
// base name and then discovery order of the derived class.
func Edges(inheritance map[string][]string) []Edge {
	bases := make([]string, 0, len(inheritance))
	for b := range inheritance {
		bases = append(bases, b)
	}
	sort.Strings(bases)

	var edges []Edge
	for _, b := range bases {
		for _, d := range inheritance[b] {
			edges = append(edges, Edge{Base: b, Derived: d, Confidence: Heuristic})
		}
	}
	return edges
}
