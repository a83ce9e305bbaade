// Package signature parses demangled C++ symbol strings into structured
// method descriptors. Parsing is pure and never fails: a string that does
// not look like a class member comes back with an empty ClassName, which
// callers treat as "not a class member".
package signature

import "strings"

// Parsed is the structured form of one demangled symbol string.
// It is derived once from the input and never mutated.
type Parsed struct {
	ClassName  string   // scope-qualified path, empty for free functions
	MethodName string   // unqualified member or function name
	ReturnType string   // empty when the signature carries none
	Parameters []string // raw parameter type strings, nil when empty
	IsConst    bool
	IsVirtual  bool
	IsStatic   bool
}

// ParamsText renders the parameter list the way a declaration would,
// e.g. "(int, std::string const&)". Empty lists render as "()".
func (p Parsed) ParamsText() string {
	return "(" + strings.Join(p.Parameters, ", ") + ")"
}

// Parse decomposes a demangled C++ signature. Precedence is fixed:
// storage prefix, return type, scope path, parameter span, const suffix.
// Unrecognized structure degrades to empty fields rather than an error.
func Parse(demangled string) Parsed {
	var p Parsed
	s := demangled

	if strings.HasPrefix(s, "virtual ") {
		p.IsVirtual = true
		s = s[len("virtual "):]
	} else if strings.HasPrefix(s, "static ") {
		p.IsStatic = true
		s = s[len("static "):]
	}

	// Return type runs to the first top-level space. Spaces inside
	// template arguments or parameter lists don't count, so
	// "std::map<int, int> C::get()" keeps its return type intact.
	if i := firstTopLevelSpace(s); i >= 0 {
		p.ReturnType = s[:i]
		s = s[i+1:]
	}

	sep := lastScopeIndex(s)
	if sep < 0 {
		p.MethodName = s
		return p
	}
	p.ClassName = s[:sep]
	tail := s[sep+2:]

	open := strings.IndexByte(tail, '(')
	if open < 0 {
		p.MethodName = tail
		return p
	}
	p.MethodName = tail[:open]

	// Parameter blob: everything after '(' with the final ')' removed.
	// A trailing " const" (emitted after the closing paren for const
	// member functions) ends up as a suffix of the blob and is stripped
	// before splitting.
	blob := tail[open+1:]
	if close := strings.LastIndexByte(blob, ')'); close >= 0 {
		blob = blob[:close] + blob[close+1:]
	}
	if strings.HasSuffix(blob, " const") {
		p.IsConst = true
		blob = strings.TrimSuffix(blob, " const")
	}
	p.Parameters = splitTopLevel(blob)
	return p
}
