// Package classmodel merges classifier output with vtable and
// inheritance data into an ordered, deduplicated per-class view. The
// model is a pure projection of parser output: it keeps no references
// to raw symbol lines and is rebuilt from scratch on every pass.
package classmodel

import (
	"sort"

	"sodump/internal/signature"
	"sodump/internal/symtab"
	"sodump/internal/vtable"
)

// Category partitions class members.
type Category uint8

const (
	Constructor Category = iota
	Destructor
	StaticMethod
	InstanceMethod
)

func (c Category) String() string {
	switch c {
	case Constructor:
		return "constructor"
	case Destructor:
		return "destructor"
	case StaticMethod:
		return "static"
	default:
		return "instance"
	}
}

// Categorize places one method record within a class. The unqualified
// name must come from the same last-top-level-scope rule the parser
// uses; a naive last-token split misfiles template-qualified
// constructors like "Outer::Inner<T>::Inner<T>".
func Categorize(rec symtab.MethodRecord, unqualified string) Category {
	switch {
	case rec.MethodName == unqualified:
		return Constructor
	case rec.MethodName == "~"+unqualified:
		return Destructor
	case rec.IsStatic:
		return StaticMethod
	default:
		return InstanceMethod
	}
}

// ClassModel is the assembled view of one reconstructed class. Member
// slices are deduplicated and sorted; a class with a vtable and zero
// parsed methods still gets a model with empty categories.
type ClassModel struct {
	Name          string
	IsPolymorphic bool
	// Confidence qualifies IsPolymorphic and BaseClasses. Always
	// Heuristic here: both are inferred from symbol naming, never
	// from verified layout data.
	Confidence      vtable.Confidence
	BaseClasses     []string
	Constructors    []symtab.MethodRecord
	Destructors     []symtab.MethodRecord
	StaticMethods   []symtab.MethodRecord
	InstanceMethods []symtab.MethodRecord
}

// MethodCount is the total across all categories.
func (m *ClassModel) MethodCount() int {
	return len(m.Constructors) + len(m.Destructors) + len(m.StaticMethods) + len(m.InstanceMethods)
}

// Assemble builds the ordered class model sequence from the classifier
// buckets, vtable info, and inferred inheritance. Classes come from the
// union of method and vtable keys and are ordered lexicographically by
// their full scope-qualified path. Base-class references may dangle
// (point at classes with no model of their own); that is tolerated.
// The result is deterministic: identical inputs assemble byte-identical.
func Assemble(classes map[string][]symtab.MethodRecord, vt vtable.Info, inheritance map[string][]string) []ClassModel {
	names := make(map[string]struct{}, len(classes)+len(vt))
	for cls := range classes {
		names[cls] = struct{}{}
	}
	for cls := range vt {
		names[cls] = struct{}{}
	}
	ordered := make([]string, 0, len(names))
	for cls := range names {
		ordered = append(ordered, cls)
	}
	sort.Strings(ordered)

	models := make([]ClassModel, 0, len(ordered))
	for _, cls := range ordered {
		m := ClassModel{
			Name:          cls,
			IsPolymorphic: vt.IsPolymorphic(cls),
			Confidence:    vtable.Heuristic,
		}
		if bases, ok := inheritance[cls]; ok {
			m.BaseClasses = append(m.BaseClasses, bases...)
		}

		unq := signature.Unqualified(cls)
		for _, rec := range classes[cls] {
			switch Categorize(rec, unq) {
			case Constructor:
				m.Constructors = append(m.Constructors, rec)
			case Destructor:
				m.Destructors = append(m.Destructors, rec)
			case StaticMethod:
				m.StaticMethods = append(m.StaticMethods, rec)
			default:
				m.InstanceMethods = append(m.InstanceMethods, rec)
			}
		}
		m.Constructors = dedupSort(m.Constructors)
		m.Destructors = dedupSort(m.Destructors)
		m.StaticMethods = dedupSort(m.StaticMethods)
		m.InstanceMethods = dedupSort(m.InstanceMethods)

		models = append(models, m)
	}
	return models
}

// recKey is the identity of a record for set semantics.
type recKey struct {
	name   string
	params string
	offset uint64
}

// dedupSort collapses records with equal (name, params, offset) and
// sorts by that same tuple.
func dedupSort(recs []symtab.MethodRecord) []symtab.MethodRecord {
	if len(recs) == 0 {
		return nil
	}
	seen := make(map[recKey]struct{}, len(recs))
	out := recs[:0:0]
	for _, r := range recs {
		k := recKey{r.MethodName, r.Params, r.Offset}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MethodName != out[j].MethodName {
			return out[i].MethodName < out[j].MethodName
		}
		if out[i].Params != out[j].Params {
			return out[i].Params < out[j].Params
		}
		return out[i].Offset < out[j].Offset
	})
	return out
}
