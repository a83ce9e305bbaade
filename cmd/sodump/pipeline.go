package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sodump/internal/classmodel"
	"sodump/internal/demangler"
	"sodump/internal/elfx"
	"sodump/internal/extract"
	"sodump/internal/render"
	"sodump/internal/symtab"
	"sodump/internal/vtable"
)

// pipelineOpts carries the flag values shared by every analysis command.
type pipelineOpts struct {
	jobs      int
	backend   string // "native" or "c++filt"
	filtPath  string
	timeout   time.Duration
	noCache   bool
	cacheBase string // directory holding .cache; empty disables caching
}

// pipelineResult is one full reconstruction pass over one library.
type pipelineResult struct {
	lib         string // clean library name, "lib" prefix stripped
	machine     string
	symbols     *symtab.Result
	vt          vtable.Info
	inheritance map[string][]string
	models      []classmodel.ClassModel
}

// runPipeline validates the ELF, collects symbol lines (cached when
// possible), and runs the reconstruction stages in dependency order:
// classify, vtable analysis, inheritance inference, assembly.
func runPipeline(ctx context.Context, libPath string, o pipelineOpts) (*pipelineResult, error) {
	ef, err := elfx.Open(libPath)
	if err != nil {
		return nil, err
	}
	machine := ef.Machine()
	logger.Info("opened shared object",
		zap.String("lib", libPath),
		zap.String("machine", machine),
		zap.String("class", ef.Class()),
		zap.Int64("size", ef.FileSize()))
	ef.Close()

	lines, err := collectLines(ctx, libPath, o)
	if err != nil {
		return nil, err
	}

	res := symtab.Classify(ctx, lines, newDemangler(o), symtab.Options{Jobs: o.jobs, Logger: logger})
	vt := vtable.Analyze(lines)
	inheritance := vtable.InferInheritance(vt)
	models := classmodel.Assemble(res.Classes, vt, inheritance)

	logger.Info("assembled class model",
		zap.Int("classes", len(models)),
		zap.Int("inheritance_bases", len(inheritance)))

	base := strings.TrimSuffix(filepath.Base(libPath), filepath.Ext(libPath))
	return &pipelineResult{
		lib:         render.CleanLibName(base),
		machine:     machine,
		symbols:     res,
		vt:          vt,
		inheritance: inheritance,
		models:      models,
	}, nil
}

// collectLines reads the symbol dump from the content-addressed cache
// when allowed, falling back to the external dumpers.
func collectLines(ctx context.Context, libPath string, o pipelineOpts) ([]string, error) {
	exOpts := extract.Options{Logger: logger}

	var cachePath string
	if o.cacheBase != "" && !o.noCache {
		key, err := extract.CacheKey(libPath)
		if err != nil {
			return nil, err
		}
		cachePath = extract.CachePath(o.cacheBase, key)
		if lines, ok := extract.LoadCache(cachePath); ok {
			logger.Info("using cached symbols", zap.String("cache", cachePath))
			return lines, nil
		}
	}

	lines, err := extract.Symbols(ctx, exOpts, libPath)
	if err != nil {
		return nil, fmt.Errorf("symbol extraction: %w", err)
	}
	if cachePath != "" {
		if err := extract.StoreCache(cachePath, lines); err != nil {
			logger.Warn("cache write failed", zap.Error(err))
		}
	}
	return lines, nil
}

func newDemangler(o pipelineOpts) demangler.Demangler {
	if o.backend == "c++filt" {
		t := demangler.NewTool(o.filtPath)
		if o.timeout > 0 {
			t.Timeout = o.timeout
		}
		return t
	}
	return demangler.NewNative(demangler.ModeFull)
}

// addPipelineFlags registers the shared flags on an analysis command.
func addPipelineFlags(cmd *cobra.Command, o *pipelineOpts) {
	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", 0, "classifier worker count (0 = NumCPU)")
	cmd.Flags().StringVar(&o.backend, "demangler", "native", "demangle backend: native or c++filt")
	cmd.Flags().StringVar(&o.filtPath, "filt-path", "", "c++filt binary (with --demangler=c++filt)")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 0, "per-symbol c++filt timeout (default 5s)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "skip the symbol dump cache")
}
