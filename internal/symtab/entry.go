// Package symtab classifies raw symbol-table text lines into per-class
// method records plus function and variable collections. The input is
// the line stream of an external ELF symbol dumper (readelf -Ws shape);
// lines that do not match the fixed-field grammar are filtered, never
// reported as errors.
package symtab

import (
	"regexp"
	"strconv"

	"sodump/internal/signature"
)

// Kind is the symbol-table type column.
type Kind uint8

const (
	KindOther Kind = iota
	KindFunction
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "FUNC"
	case KindObject:
		return "OBJECT"
	default:
		return "OTHER"
	}
}

// Binding is the symbol-table bind column.
type Binding uint8

const (
	BindUnknown Binding = iota
	BindGlobal
	BindWeak
	BindLocal
)

func (b Binding) String() string {
	switch b {
	case BindGlobal:
		return "GLOBAL"
	case BindWeak:
		return "WEAK"
	case BindLocal:
		return "LOCAL"
	default:
		return "UNKNOWN"
	}
}

// Entry is one parsed symbol-table row. Immutable once parsed.
type Entry struct {
	Offset  uint64 // virtual address; never zero in classifier output
	Kind    Kind
	Binding Binding
	RawName string
}

// Symbol pairs an Entry with its demangled form, when one exists.
// Demangled stays empty on demangler failure or timeout; Sig is only
// meaningful when Demangled is non-empty.
type Symbol struct {
	Entry
	Demangled string
	Sig       signature.Parsed
}

// MethodRecord is one reconstructed class-member hit: a demangled symbol
// whose signature carried a class path. Records are bucketed per class
// in input order and deduplicated later at assembly time.
type MethodRecord struct {
	MethodName string
	Params     string // rendered parameter list, "(int, char)" form
	Offset     uint64
	ReturnType string
	IsConst    bool
	IsVirtual  bool
	IsStatic   bool
}

// rowPattern is the fixed-field grammar of one symbol-table row:
// index, hex offset (8-16 digits), size, type, bind, visibility,
// numeric section index, then the raw name running to end of line.
// A non-numeric section index (UND, ABS) fails the match, which is the
// desired filter for undefined entries.
var rowPattern = regexp.MustCompile(
	`^\s*\d+:\s+([0-9a-fA-F]{8,16})\s+\d+\s+(\w+)\s+(\w+)\s+\w+\s+(\d+)\s+(.+?)\s*$`)

// ParseLine matches one line against the row grammar. ok is false for
// lines that don't match or whose offset is the all-zero "unresolved"
// sentinel; both are silently skipped by the classifier.
func ParseLine(line string) (Entry, bool) {
	m := rowPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	off, err := strconv.ParseUint(m[1], 16, 64)
	if err != nil || off == 0 {
		return Entry{}, false
	}

	e := Entry{Offset: off, RawName: m[5]}
	switch m[2] {
	case "FUNC":
		e.Kind = KindFunction
	case "OBJECT":
		e.Kind = KindObject
	}
	switch m[3] {
	case "GLOBAL":
		e.Binding = BindGlobal
	case "WEAK":
		e.Binding = BindWeak
	case "LOCAL":
		e.Binding = BindLocal
	}
	return e, true
}
