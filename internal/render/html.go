package render

import (
	"fmt"
	"io"
	"time"

	"sodump/internal/classmodel"
	"sodump/internal/symtab"
)

// Theme holds the report palette.
type Theme struct {
	Background string
	TextColor  string
	Accent     string // headings, links
	Muted      string // offsets, annotations
	Border     string
	Poly       string // polymorphic class badge
}

// Mono is the default theme: monochrome with one accent color.
var Mono = Theme{
	Background: "#F5F5F5",
	TextColor:  "#1A1A1A",
	Accent:     "#0B3D91",
	Muted:      "#888888",
	Border:     "#DDDDDD",
	Poly:       "#00695C",
}

// ReportStats summarizes one pass for the report header.
type ReportStats struct {
	Classes      int
	Methods      int
	Polymorphic  int
	Functions    int
	Variables    int
	InheritEdges int
}

// WriteReportHTML writes the HTML report: summary table, then one block
// per class in model order with its members and offsets.
func WriteReportHTML(w io.Writer, lib string, models []classmodel.ClassModel, stats ReportStats, t Theme, now time.Time) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>sodump report: %s</title>
<style>
body { font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; font-size: 14px; color: %s; background: %s; margin: 2em; max-width: 900px; }
h1 { font-size: 18px; font-weight: 600; margin-bottom: 0.5em; }
h2 { font-size: 14px; font-weight: 600; margin-top: 1.5em; border-bottom: 1px solid %s; padding-bottom: 4px; }
table { border-collapse: collapse; margin: 0.5em 0; }
th, td { text-align: left; padding: 3px 12px 3px 0; font-size: 13px; }
td.num { text-align: right; font-variant-numeric: tabular-nums; }
.class { margin-bottom: 1em; border: 1px solid %s; background: white; padding: 10px; }
.class h3 { font-size: 13px; font-family: "Courier New", monospace; margin: 0 0 6px 0; color: %s; }
.method { margin-left: 16px; font-family: "Courier New", monospace; font-size: 12px; }
.offset { color: %s; }
.poly { display: inline-block; padding: 0 6px; border-radius: 2px; background: %s; color: white; font-size: 11px; margin-left: 8px; }
.heur { color: %s; font-size: 11px; }
</style>
</head>
<body>
`, htmlEscape(lib), t.TextColor, t.Background, t.Border, t.Border, t.Accent, t.Muted, t.Poly, t.Muted)

	fmt.Fprintf(w, "<h1>sodump report: %s</h1>\n", htmlEscape(lib))
	fmt.Fprintf(w, "<p class=\"heur\">Generated %s. Polymorphism and inheritance are heuristic.</p>\n",
		now.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(w, "<h2>Summary</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintf(w, "<tr><td>Classes</td><td class=\"num\">%d</td></tr>\n", stats.Classes)
	fmt.Fprintf(w, "<tr><td>Methods</td><td class=\"num\">%d</td></tr>\n", stats.Methods)
	fmt.Fprintf(w, "<tr><td>Polymorphic classes</td><td class=\"num\">%d</td></tr>\n", stats.Polymorphic)
	fmt.Fprintf(w, "<tr><td>Inheritance edges</td><td class=\"num\">%d</td></tr>\n", stats.InheritEdges)
	fmt.Fprintf(w, "<tr><td>Functions</td><td class=\"num\">%d</td></tr>\n", stats.Functions)
	fmt.Fprintf(w, "<tr><td>Variables</td><td class=\"num\">%d</td></tr>\n", stats.Variables)
	fmt.Fprintln(w, "</table>")

	fmt.Fprintln(w, "<h2>Classes</h2>")
	for i := range models {
		writeClassHTML(w, &models[i])
	}

	fmt.Fprintln(w, "</body></html>")
}

func writeClassHTML(w io.Writer, m *classmodel.ClassModel) {
	fmt.Fprint(w, `<div class="class"><h3>class `)
	fmt.Fprint(w, htmlEscape(m.Name))
	if len(m.BaseClasses) > 0 {
		fmt.Fprint(w, htmlEscape(" : public "))
		for i, b := range m.BaseClasses {
			if i > 0 {
				fmt.Fprint(w, htmlEscape(", public "))
			}
			fmt.Fprint(w, htmlEscape(b))
		}
	}
	if m.IsPolymorphic {
		fmt.Fprint(w, `<span class="poly">vtable</span>`)
	}
	fmt.Fprintln(w, "</h3>")

	writeMethodsHTML(w, m.Constructors)
	writeMethodsHTML(w, m.Destructors)
	writeMethodsHTML(w, m.StaticMethods)
	writeMethodsHTML(w, m.InstanceMethods)
	fmt.Fprintln(w, "</div>")
}

func writeMethodsHTML(w io.Writer, recs []symtab.MethodRecord) {
	for _, r := range recs {
		fmt.Fprintf(w, "<div class=\"method\">%s; <span class=\"offset\">// 0x%x</span></div>\n",
			htmlEscape(virtualPrefix(r)+memberText(r)), r.Offset)
	}
}
