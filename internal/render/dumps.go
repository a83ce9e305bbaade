package render

import (
	"fmt"
	"io"
	"sort"

	"sodump/internal/symtab"
	"sodump/internal/vtable"
)

// WriteSymbolDump renders the functions or variables collection as an
// annotated listing: demangled form when available, then the raw table
// facts. Entries keep classifier order (input line order).
func WriteSymbolDump(w io.Writer, lib, what string, syms []symtab.Symbol) {
	fmt.Fprintf(w, "// Global %s for %s\n\n", what, lib)
	for _, s := range syms {
		if s.Demangled != "" {
			fmt.Fprintf(w, "// %s\n", s.Demangled)
		}
		fmt.Fprintf(w, "// Offset: 0x%x, Type: %s, Bind: %s\n", s.Offset, s.Kind, s.Binding)
		fmt.Fprintf(w, "// Original name: %s\n\n", s.RawName)
	}
}

// WriteVtableDump renders the raw vtable/typeinfo lines per class,
// verbatim and in encounter order. Classes are sorted for stable output.
func WriteVtableDump(w io.Writer, lib string, vt vtable.Info) {
	fmt.Fprintf(w, "// Virtual tables for %s\n\n", lib)

	classes := vt.Classes()
	sort.Strings(classes)
	for _, cls := range classes {
		fmt.Fprintf(w, "// %s for %s\n", artifactSummary(vt[cls]), cls)
		for _, a := range vt[cls] {
			fmt.Fprintf(w, "// [%s] %s\n", a.Kind, a.Line)
		}
		fmt.Fprintln(w)
	}
}

func artifactSummary(arts []vtable.Artifact) string {
	vt, ti := 0, 0
	for _, a := range arts {
		if a.Kind == vtable.Vtable {
			vt++
		} else {
			ti++
		}
	}
	return fmt.Sprintf("%d vtable / %d typeinfo entries", vt, ti)
}

// WriteStringRefs renders extracted string references one per line.
func WriteStringRefs(w io.Writer, refs []string) {
	for _, s := range refs {
		fmt.Fprintln(w, s)
	}
}
