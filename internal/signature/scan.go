package signature

import "strings"

// Depth-aware scanning helpers. Demangled C++ names nest templates and
// parameter lists arbitrarily, so separators are only meaningful at
// bracket depth zero. Operator names ("operator<", "operator>>") can
// unbalance the count; depth never goes below zero so a stray '>' does
// not poison the rest of the scan.

// depthAt tracks nesting of angle brackets and parentheses.
type depthTracker struct {
	angle int
	paren int
}

func (d *depthTracker) step(c byte) {
	switch c {
	case '<':
		d.angle++
	case '>':
		if d.angle > 0 {
			d.angle--
		}
	case '(':
		d.paren++
	case ')':
		if d.paren > 0 {
			d.paren--
		}
	}
}

func (d *depthTracker) top() bool { return d.angle == 0 && d.paren == 0 }

// lastScopeIndex returns the byte index of the last "::" that sits at
// top level (outside template angle brackets and parentheses), or -1.
func lastScopeIndex(s string) int {
	var d depthTracker
	last := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if d.top() && c == ':' && i+1 < len(s) && s[i+1] == ':' {
			last = i
			i++ // skip second colon
			continue
		}
		d.step(c)
	}
	return last
}

// firstTopLevelSpace returns the index of the first space at top level, or -1.
func firstTopLevelSpace(s string) int {
	var d depthTracker
	for i := 0; i < len(s); i++ {
		c := s[i]
		if d.top() && c == ' ' {
			return i
		}
		d.step(c)
	}
	return -1
}

// splitTopLevel splits s on commas at top level and trims each piece.
// An empty input yields nil, never a one-element slice of "".
func splitTopLevel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var d depthTracker
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if d.top() && c == ',' {
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
			continue
		}
		d.step(c)
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// Unqualified returns the last top-level scope segment of a qualified
// class path: "Outer::Inner<T>" yields "Inner<T>". Names without a separator
// are returned unchanged. Constructor and destructor matching has to use
// this rule rather than a naive split so that template-qualified paths
// like "Outer::Inner<std::pair<A,B>>" resolve correctly.
func Unqualified(classPath string) string {
	if i := lastScopeIndex(classPath); i >= 0 {
		return classPath[i+2:]
	}
	return classPath
}
