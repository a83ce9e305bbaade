package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"sodump/internal/classmodel"
	"sodump/internal/signature"
	"sodump/internal/symtab"
	"sodump/internal/vtable"
)

// WriteDeclarations renders the class model as C++-style declarations.
// Classes arrive pre-sorted from the assembler; members are already
// deduplicated and ordered, so the output is byte-stable for one input.
func WriteDeclarations(w io.Writer, lib string, models []classmodel.ClassModel, vt vtable.Info, now time.Time) {
	fmt.Fprintf(w, "// Reconstructed class declarations for %s\n", lib)
	fmt.Fprintf(w, "// Generated on %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "// Polymorphism and inheritance below are heuristic, inferred from\n")
	fmt.Fprintf(w, "// vtable/typeinfo symbol naming. Do not treat as verified ABI.\n\n")

	for i := range models {
		writeClassDecl(w, &models[i], vt)
		fmt.Fprintln(w)
	}
}

func writeClassDecl(w io.Writer, m *classmodel.ClassModel, vt vtable.Info) {
	fmt.Fprintf(w, "class %s", m.Name)
	if len(m.BaseClasses) > 0 {
		fmt.Fprintf(w, " : public %s", strings.Join(m.BaseClasses, ", public "))
	}
	fmt.Fprintln(w, " {")

	if m.IsPolymorphic {
		fmt.Fprintf(w, "    // %s\n", vtableComment(m.Name, vt))
	}

	unq := signature.Unqualified(m.Name)
	if len(m.Constructors) > 0 {
		fmt.Fprintln(w, "public:")
		for _, r := range m.Constructors {
			fmt.Fprintf(w, "    %s%s; // offset: 0x%x\n", unq, r.Params, r.Offset)
		}
	}
	if len(m.Destructors) > 0 {
		fmt.Fprintln(w, "public:")
		for _, r := range m.Destructors {
			fmt.Fprintf(w, "    %s~%s%s; // offset: 0x%x\n", virtualPrefix(r), unq, r.Params, r.Offset)
		}
	}
	if len(m.StaticMethods) > 0 {
		fmt.Fprintln(w, "public:")
		for _, r := range m.StaticMethods {
			fmt.Fprintf(w, "    static %s; // offset: 0x%x\n", memberText(r), r.Offset)
		}
	}
	if len(m.InstanceMethods) > 0 {
		fmt.Fprintln(w, "public:")
		for _, r := range m.InstanceMethods {
			fmt.Fprintf(w, "    %s%s; // offset: 0x%x\n", virtualPrefix(r), memberText(r), r.Offset)
		}
	}

	fmt.Fprintln(w, "};")
}

// memberText renders "ReturnType name(params)[ const]" with the return
// type omitted when the symbol carried none.
func memberText(r symtab.MethodRecord) string {
	var b strings.Builder
	if r.ReturnType != "" {
		b.WriteString(r.ReturnType)
		b.WriteByte(' ')
	}
	b.WriteString(r.MethodName)
	b.WriteString(r.Params)
	if r.IsConst {
		b.WriteString(" const")
	}
	return b.String()
}

func virtualPrefix(r symtab.MethodRecord) string {
	if r.IsVirtual {
		return "virtual "
	}
	return ""
}

// vtableComment summarizes the vtable evidence for a class: the offset
// of the first vtable symbol when its raw line parses, else a marker
// that only the naming convention matched.
func vtableComment(class string, vt vtable.Info) string {
	for _, a := range vt[class] {
		if a.Kind != vtable.Vtable {
			continue
		}
		if e, ok := symtab.ParseLine(a.Line); ok {
			return fmt.Sprintf("vtable at 0x%x", e.Offset)
		}
		return "vtable present (offset unknown)"
	}
	return "vtable present (offset unknown)"
}
