// Package extract shells out to the binutils symbol dumpers and feeds
// their output to the reconstruction engine as a flat line stream. The
// engine never parses binaries itself; everything here is collaborator
// plumbing: subprocess invocation, timeouts, and a content-addressed
// cache of the raw dump.
package extract

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	readelfTimeout = 30 * time.Second
	nmTimeout      = 30 * time.Second
	stringsTimeout = 60 * time.Second
)

// Options configures symbol extraction.
type Options struct {
	ReadelfPath string // defaults to "readelf"
	NMPath      string // defaults to "nm"; skipped when not installed
	Logger      *zap.Logger
}

func (o *Options) defaults() {
	if o.ReadelfPath == "" {
		o.ReadelfPath = "readelf"
	}
	if o.NMPath == "" {
		o.NMPath = "nm"
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Symbols collects raw symbol-table lines for a shared object. The
// primary source is `readelf -Ws`; when nm is installed, its demangled
// dynamic symbols are appended as a secondary source (duplicate vtable
// lines from the overlap are expected and handled downstream). A
// timeout on the secondary source logs a warning and keeps whatever
// was already collected; a failing primary source is an error.
func Symbols(ctx context.Context, opts Options, libPath string) ([]string, error) {
	opts.defaults()
	var lines []string

	out, err := runTool(ctx, readelfTimeout, opts.ReadelfPath, "-Ws", libPath)
	if err != nil {
		return nil, err
	}
	lines = append(lines, splitLines(out)...)

	if _, err := exec.LookPath(opts.NMPath); err == nil {
		out, err := runTool(ctx, nmTimeout, opts.NMPath, "-D", "--defined-only", "--demangle", libPath)
		if err != nil {
			opts.Logger.Warn("nm symbol extraction failed", zap.Error(err))
		} else {
			lines = append(lines, splitLines(out)...)
		}
	}

	opts.Logger.Info("extracted symbols", zap.String("lib", libPath), zap.Int("lines", len(lines)))
	return lines, nil
}

// StringRefs runs `strings -a` and keeps the lines worth surfacing:
// URLs, API paths, and library references longer than four characters.
func StringRefs(ctx context.Context, opts Options, libPath string) []string {
	opts.defaults()
	out, err := runTool(ctx, stringsTimeout, "strings", "-a", libPath)
	if err != nil {
		opts.Logger.Warn("string extraction failed", zap.Error(err))
		return nil
	}

	markers := []string{"://", "/api/", "/v1/", "http", "lib", "so"}
	var interesting []string
	for _, s := range splitLines(out) {
		if len(s) <= 4 {
			continue
		}
		for _, m := range markers {
			if strings.Contains(s, m) {
				interesting = append(interesting, s)
				break
			}
		}
	}
	return interesting
}

// runTool executes one external tool under a bounded context.
func runTool(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ToolError{Tool: name, Stderr: string(bytes.TrimSpace(exitErr.Stderr)), Err: err}
		}
		return nil, &ToolError{Tool: name, Err: err}
	}
	return out, nil
}

// ToolError reports a failed external tool invocation.
type ToolError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return "extract: " + e.Tool + ": " + e.Stderr
	}
	return "extract: " + e.Tool + ": " + e.Err.Error()
}

func (e *ToolError) Unwrap() error { return e.Err }

func splitLines(out []byte) []string {
	s := strings.TrimRight(string(out), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
