// Package demangler turns mangled C++ symbol names back into readable
// signatures. Two backends exist: a pure-Go one and a c++filt subprocess.
// Both report failure by returning ok=false; callers record the symbol
// as un-demangled and move on, never treating a miss as an error.
package demangler

import (
	"context"
	"strings"

	"github.com/ianlancetaylor/demangle"
)

// MangledPrefix is the Itanium ABI prefix carried by mangled C++ names.
const MangledPrefix = "_Z"

// IsMangled reports whether a raw symbol name uses the mangled-name
// prefix convention.
func IsMangled(name string) bool {
	return strings.HasPrefix(name, MangledPrefix)
}

// Demangler recovers a demangled signature for a raw symbol name.
type Demangler interface {
	Demangle(ctx context.Context, mangled string) (string, bool)
}

// Mode selects how much of the signature the native backend keeps.
type Mode string

const (
	ModeFull       Mode = "full"       // complete signature, clones dropped
	ModeTemplates  Mode = "templates"  // no parameters, templates kept
	ModeSimplified Mode = "simplified" // bare qualified name
)

func (m Mode) options() []demangle.Option {
	switch m {
	case ModeSimplified:
		return []demangle.Option{demangle.NoParams, demangle.NoEnclosingParams, demangle.NoTemplateParams}
	case ModeTemplates:
		return []demangle.Option{demangle.NoParams, demangle.NoEnclosingParams}
	default:
		return []demangle.Option{demangle.NoClones}
	}
}

// Native demangles in-process. It never blocks, so the context is unused;
// it is accepted to satisfy Demangler.
type Native struct {
	opts []demangle.Option
}

// NewNative returns an in-process demangler for the given mode.
func NewNative(mode Mode) *Native {
	return &Native{opts: mode.options()}
}

// Demangle implements Demangler. Filter returns its input unchanged when
// the name does not demangle, which maps to ok=false here.
func (n *Native) Demangle(_ context.Context, mangled string) (string, bool) {
	out := demangle.Filter(mangled, n.opts...)
	if out == mangled {
		return "", false
	}
	return out, true
}
