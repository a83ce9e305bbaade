package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	latticerender "github.com/zboralski/lattice/render"
	"go.uber.org/zap"

	"sodump/internal/classgraph"
	"sodump/internal/extract"
	"sodump/internal/output"
	"sodump/internal/render"
	"sodump/internal/vtable"
)

var (
	dumpOpts    pipelineOpts
	dumpOut     string
	dumpFormat  string
	dumpStrings bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <lib.so>",
	Short: "Reconstruct the class model and write all report artifacts",
	Long: `Dump runs the full pipeline on one shared object and writes the
results under <out>/<lib>_dump/: class declarations, function and
variable dumps, vtable dump, JSON metadata, HTML report, and an
inheritance graph in Graphviz DOT.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOut, "out", "o", "./output", "output directory")
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "all", "cpp, json, html, dot, or all")
	dumpCmd.Flags().BoolVar(&dumpStrings, "strings", false, "also extract string references")
	addPipelineFlags(dumpCmd, &dumpOpts)
}

func runDump(cmd *cobra.Command, args []string) error {
	start := time.Now()
	dumpOpts.cacheBase = dumpOut

	// Dumps keep a log next to their artifacts unless redirected.
	if flagLogFile == "" {
		if err := os.MkdirAll(dumpOut, 0755); err != nil {
			return err
		}
		l, err := newLogger(flagVerbose, filepath.Join(dumpOut, "sodump.log"))
		if err != nil {
			return err
		}
		logger = l
	}

	pr, err := runPipeline(cmd.Context(), args[0], dumpOpts)
	if err != nil {
		return err
	}

	dir, err := output.Dir(dumpOut, pr.lib)
	if err != nil {
		return err
	}

	now := time.Now()
	wantCpp := dumpFormat == "cpp" || dumpFormat == "all"
	wantJSON := dumpFormat == "json" || dumpFormat == "all"
	wantHTML := dumpFormat == "html" || dumpFormat == "all"
	wantDOT := dumpFormat == "dot" || dumpFormat == "all"
	if !wantCpp && !wantJSON && !wantHTML && !wantDOT {
		return fmt.Errorf("unknown format %q", dumpFormat)
	}

	if wantCpp {
		err := output.WriteFile(filepath.Join(dir, pr.lib+"_classes.cpp"), func(f *os.File) error {
			render.WriteDeclarations(f, pr.lib, pr.models, pr.vt, now)
			return nil
		})
		if err != nil {
			return err
		}
		err = output.WriteFile(filepath.Join(dir, pr.lib+"_functions.cpp"), func(f *os.File) error {
			render.WriteSymbolDump(f, pr.lib, "functions", pr.symbols.Functions)
			return nil
		})
		if err != nil {
			return err
		}
		err = output.WriteFile(filepath.Join(dir, pr.lib+"_variables.cpp"), func(f *os.File) error {
			render.WriteSymbolDump(f, pr.lib, "variables", pr.symbols.Variables)
			return nil
		})
		if err != nil {
			return err
		}
		err = output.WriteFile(filepath.Join(dir, pr.lib+"_vtables.cpp"), func(f *os.File) error {
			render.WriteVtableDump(f, pr.lib, pr.vt)
			return nil
		})
		if err != nil {
			return err
		}
	}

	if wantJSON {
		md := render.BuildMetadata(pr.lib, pr.models,
			len(pr.symbols.Functions), len(pr.symbols.Variables), pr.inheritance, now)
		if err := output.WriteJSON(filepath.Join(dir, pr.lib+"_metadata.json"), md); err != nil {
			return err
		}
	}

	if wantHTML {
		stats := reportStats(pr)
		err := output.WriteFile(filepath.Join(dir, pr.lib+"_report.html"), func(f *os.File) error {
			render.WriteReportHTML(f, pr.lib, pr.models, stats, render.Mono, now)
			return nil
		})
		if err != nil {
			return err
		}
	}

	if wantDOT {
		g := classgraph.Build(pr.models, vtable.Edges(pr.inheritance))
		dot := latticerender.DOT(g, pr.lib+" inheritance")
		if err := output.WriteText(filepath.Join(dir, "inheritance.dot"), dot); err != nil {
			return err
		}
	}

	if dumpStrings {
		refs := extract.StringRefs(cmd.Context(), extract.Options{Logger: logger}, args[0])
		if len(refs) > 0 {
			err := output.WriteFile(filepath.Join(dir, "string_references.txt"), func(f *os.File) error {
				render.WriteStringRefs(f, refs)
				return nil
			})
			if err != nil {
				return err
			}
		}
	}

	methods := 0
	for i := range pr.models {
		methods += pr.models[i].MethodCount()
	}
	logger.Info("dump complete",
		zap.String("dir", dir),
		zap.Int("classes", len(pr.models)),
		zap.Int("methods", methods),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func reportStats(pr *pipelineResult) render.ReportStats {
	stats := render.ReportStats{
		Classes:   len(pr.models),
		Functions: len(pr.symbols.Functions),
		Variables: len(pr.symbols.Variables),
	}
	for i := range pr.models {
		m := &pr.models[i]
		stats.Methods += m.MethodCount()
		if m.IsPolymorphic {
			stats.Polymorphic++
		}
		stats.InheritEdges += len(m.BaseClasses)
	}
	return stats
}
