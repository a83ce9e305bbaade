package demangler

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds one c++filt invocation. Expiry degrades the
// symbol to its un-demangled form; there is no retry.
const DefaultTimeout = 5 * time.Second

// Tool demangles by invoking an external filter program (c++filt).
// Each call spawns one bounded subprocess; a timeout or non-zero exit
// is reported as ok=false, identical to "no demangled form available".
type Tool struct {
	Path    string        // filter binary, defaults to "c++filt"
	Timeout time.Duration // per-call bound, defaults to DefaultTimeout
}

// NewTool returns a c++filt-backed demangler.
func NewTool(path string) *Tool {
	if path == "" {
		path = "c++filt"
	}
	return &Tool{Path: path, Timeout: DefaultTimeout}
}

// Demangle implements Demangler.
func (t *Tool) Demangle(ctx context.Context, mangled string) (string, bool) {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, t.Path, mangled).Output()
	if err != nil {
		return "", false
	}
	s := strings.TrimSpace(string(out))
	if s == "" || s == mangled {
		return "", false
	}
	return s, true
}
