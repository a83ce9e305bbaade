package classmodel

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sodump/internal/symtab"
	"sodump/internal/vtable"
)

func rec(name, params string, off uint64) symtab.MethodRecord {
	return symtab.MethodRecord{MethodName: name, Params: params, Offset: off}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		method string
		static bool
		want   Category
	}{
		{"Bar", false, Constructor},
		{"~Bar", false, Destructor},
		{"Baz", true, StaticMethod},
		{"Baz", false, InstanceMethod},
	}
	for _, tt := range tests {
		r := symtab.MethodRecord{MethodName: tt.method, IsStatic: tt.static}
		if got := Categorize(r, "Bar"); got != tt.want {
			t.Errorf("Categorize(%q, static=%v) = %v, want %v", tt.method, tt.static, got, tt.want)
		}
	}
}

func TestAssemble_Partition(t *testing.T) {
	classes := map[string][]symtab.MethodRecord{
		"Foo::Bar": {
			rec("Bar", "(int)", 0x10),
			rec("~Bar", "()", 0x20),
			{MethodName: "Baz", Params: "()", Offset: 0x30, IsStatic: true},
			rec("Baz", "(char)", 0x40),
		},
	}
	models := Assemble(classes, vtable.Info{}, nil)
	require.Len(t, models, 1)

	m := models[0]
	assert.Equal(t, "Foo::Bar", m.Name)
	assert.False(t, m.IsPolymorphic)
	require.Len(t, m.Constructors, 1)
	assert.Equal(t, "Bar", m.Constructors[0].MethodName)
	require.Len(t, m.Destructors, 1)
	assert.Equal(t, "~Bar", m.Destructors[0].MethodName)
	require.Len(t, m.StaticMethods, 1)
	require.Len(t, m.InstanceMethods, 1)
	assert.Equal(t, 4, m.MethodCount())
}

func TestAssemble_Dedup(t *testing.T) {
	classes := map[string][]symtab.MethodRecord{
		"Foo": {
			rec("run", "()", 0x10),
			rec("run", "()", 0x10),
			rec("run", "()", 0x18), // different offset: kept
		},
	}
	models := Assemble(classes, vtable.Info{}, nil)
	require.Len(t, models, 1)
	assert.Len(t, models[0].InstanceMethods, 2)
}

func TestAssemble_VtableOnlyClass(t *testing.T) {
	vt := vtable.Analyze([]string{"vtable for Ghost"})
	models := Assemble(nil, vt, nil)
	require.Len(t, models, 1)

	m := models[0]
	assert.Equal(t, "Ghost", m.Name)
	assert.True(t, m.IsPolymorphic)
	assert.Equal(t, vtable.Heuristic, m.Confidence)
	assert.Zero(t, m.MethodCount(), "empty categories must not break assembly")
}

func TestAssemble_DanglingBaseTolerated(t *testing.T) {
	classes := map[string][]symtab.MethodRecord{"Derived": {rec("run", "()", 0x10)}}
	inheritance := map[string][]string{"Derived": {"ExternalBase"}}

	models := Assemble(classes, vtable.Info{}, inheritance)
	require.Len(t, models, 1)
	assert.Equal(t, []string{"ExternalBase"}, models[0].BaseClasses)
}

func TestAssemble_TemplateQualifiedConstructor(t *testing.T) {
	classes := map[string][]symtab.MethodRecord{
		"Outer::Inner<T>": {
			rec("Inner<T>", "(T const&)", 0x10),
			rec("~Inner<T>", "()", 0x20),
		},
	}
	models := Assemble(classes, vtable.Info{}, nil)
	require.Len(t, models, 1)
	assert.Len(t, models[0].Constructors, 1)
	assert.Len(t, models[0].Destructors, 1)
	assert.Empty(t, models[0].InstanceMethods)
}

func TestAssemble_Deterministic(t *testing.T) {
	classes := map[string][]symtab.MethodRecord{
		"B": {rec("x", "()", 2), rec("a", "()", 1)},
		"A": {rec("z", "(int)", 9)},
		"C": {},
	}
	vt := vtable.Analyze([]string{"vtable for B", "typeinfo for D"})
	inh := vtable.InferInheritance(vt)

	first := Assemble(classes, vt, inh)
	for i := 0; i < 8; i++ {
		again := Assemble(classes, vt, inh)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("assembly differs between runs:\n%+v\n%+v", first, again)
		}
	}

	// Lexicographic class order over the union of keys.
	var names []string
	for _, m := range first {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)

	// Per-category sort by (name, params, offset).
	assert.Equal(t, "a", first[1].InstanceMethods[0].MethodName)
	assert.Equal(t, "x", first[1].InstanceMethods[1].MethodName)
}
