// Package vtable scans raw symbol lines for virtual-table and type-info
// markers and derives best-effort inheritance edges from them. Nothing
// here is verified ABI data: every conclusion is tagged heuristic and
// callers must treat it that way.
package vtable

import "strings"

// ArtifactKind distinguishes the two marker patterns.
type ArtifactKind uint8

const (
	Vtable ArtifactKind = iota
	TypeInfo
)

func (k ArtifactKind) String() string {
	if k == Vtable {
		return "vtable"
	}
	return "typeinfo"
}

// Artifact is one raw symbol line that matched a marker, kept verbatim
// for diagnostic dumps.
type Artifact struct {
	Kind ArtifactKind
	Line string
}

// Info maps a class name to its vtable/typeinfo artifacts in encounter
// order. Duplicate lines are stored twice; deduplication, if wanted, is
// the consumer's call.
type Info map[string][]Artifact

const (
	vtableMarker   = "vtable for "
	typeinfoMarker = "typeinfo for "
)

// Analyze scans every line for the two marker patterns. A line matches
// at most one: vtable first, then typeinfo. The class name runs from the
// marker to end of line, trimmed.
func Analyze(lines []string) Info {
	info := make(Info)
	for _, line := range lines {
		if i := strings.Index(line, vtableMarker); i >= 0 {
			cls := strings.TrimSpace(line[i+len(vtableMarker):])
			info[cls] = append(info[cls], Artifact{Kind: Vtable, Line: line})
			continue
		}
		if i := strings.Index(line, typeinfoMarker); i >= 0 {
			cls := strings.TrimSpace(line[i+len(typeinfoMarker):])
			info[cls] = append(info[cls], Artifact{Kind: TypeInfo, Line: line})
		}
	}
	return info
}

// IsPolymorphic reports whether the class has at least one Vtable
// artifact. Typeinfo alone does not count.
func (in Info) IsPolymorphic(class string) bool {
	for _, a := range in[class] {
		if a.Kind == Vtable {
			return true
		}
	}
	return false
}

// Classes returns the class names present in the mapping, unordered.
func (in Info) Classes() []string {
	out := make([]string, 0, len(in))
	for cls := range in {
		out = append(out, cls)
	}
	return out
}
