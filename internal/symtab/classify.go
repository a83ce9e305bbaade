package symtab

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"sodump/internal/demangler"
	"sodump/internal/signature"
)

// Options configures a classification pass.
type Options struct {
	// Jobs is the worker pool size; <= 0 means runtime.NumCPU().
	Jobs int
	// Logger, when set, receives per-pass summary counts.
	Logger *zap.Logger
}

// Result holds one classification pass over an input line stream.
// Classes maps a scope-qualified class path to its method records in
// input line order, not yet deduplicated. A symbol that is both a class
// method and a function appears in both Classes and Functions; that is
// how flat symbol tables work and downstream consumers rely on it.
type Result struct {
	Classes   map[string][]MethodRecord
	Functions []Symbol
	Variables []Symbol
}

// lineResult is the independent output of one worker for one line.
// Workers share nothing; results are merged after the pool drains.
type lineResult struct {
	index int
	sym   Symbol
	class string // non-empty when rec is valid
	rec   MethodRecord
	ok    bool
}

// Classify runs the fixed-field grammar, demangler, and signature parser
// over every input line using a bounded worker pool, then merges the
// per-line results in ascending line order. The merge order makes output
// deterministic regardless of worker completion order.
func Classify(ctx context.Context, lines []string, dm demangler.Demangler, opts Options) *Result {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	work := make(chan int, len(lines))
	results := make(chan lineResult, len(lines))

	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				results <- classifyLine(ctx, idx, lines[idx], dm)
			}
		}()
	}
	for i := range lines {
		work <- i
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]lineResult, 0, len(lines))
	for lr := range results {
		if lr.ok {
			collected = append(collected, lr)
		}
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	res := &Result{Classes: make(map[string][]MethodRecord)}
	demangled := 0
	for _, lr := range collected {
		if lr.class != "" {
			res.Classes[lr.class] = append(res.Classes[lr.class], lr.rec)
		}
		if lr.sym.Demangled != "" {
			demangled++
		}
		switch lr.sym.Kind {
		case KindFunction:
			res.Functions = append(res.Functions, lr.sym)
		case KindObject:
			res.Variables = append(res.Variables, lr.sym)
		}
	}

	if opts.Logger != nil {
		opts.Logger.Info("classified symbols",
			zap.Int("lines", len(lines)),
			zap.Int("entries", len(collected)),
			zap.Int("demangled", demangled),
			zap.Int("classes", len(res.Classes)),
			zap.Int("functions", len(res.Functions)),
			zap.Int("variables", len(res.Variables)))
	}
	return res
}

// classifyLine processes one raw line: grammar match, demangle, parse.
// Demangle failures degrade to an un-demangled Symbol; they still count
// as functions/variables but never contribute a MethodRecord.
func classifyLine(ctx context.Context, index int, line string, dm demangler.Demangler) lineResult {
	entry, ok := ParseLine(line)
	if !ok {
		return lineResult{}
	}

	lr := lineResult{index: index, sym: Symbol{Entry: entry}, ok: true}
	if dm == nil || !demangler.IsMangled(entry.RawName) {
		return lr
	}

	out, ok := dm.Demangle(ctx, entry.RawName)
	if !ok {
		return lr
	}
	lr.sym.Demangled = out
	lr.sym.Sig = signature.Parse(out)

	if cls := lr.sym.Sig.ClassName; cls != "" {
		lr.class = cls
		lr.rec = MethodRecord{
			MethodName: lr.sym.Sig.MethodName,
			Params:     lr.sym.Sig.ParamsText(),
			Offset:     entry.Offset,
			ReturnType: lr.sym.Sig.ReturnType,
			IsConst:    lr.sym.Sig.IsConst,
			IsVirtual:  lr.sym.Sig.IsVirtual,
			IsStatic:   lr.sym.Sig.IsStatic,
		}
	}
	return lr
}
