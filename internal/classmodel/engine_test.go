package classmodel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sodump/internal/classmodel"
	"sodump/internal/demangler"
	"sodump/internal/symtab"
	"sodump/internal/vtable"
)

// Full pass over a small symbol dump: classify, vtable analysis,
// inheritance inference, assembly. Uses the in-process demangler on
// real mangled names.
func TestEndToEndReconstruction(t *testing.T) {
	lines := []string{
		"Symbol table '.dynsym' contains 6 entries:",
		"   Num:    Value          Size Type    Bind   Vis      Ndx Name",
		"     1: 0000000000001100    32 FUNC    GLOBAL DEFAULT   12 _Z3fooi",
		"     2: 0000000000001200    48 FUNC    WEAK   DEFAULT   12 _ZN5Shape4drawEv",
		"     3: 0000000000001300    64 FUNC    GLOBAL DEFAULT   12 _ZN5ShapeC1Ev",
		"     4: 0000000000003000    48 OBJECT  WEAK   DEFAULT   14 vtable for Shape",
		"     5: 0000000000003040    16 OBJECT  WEAK   DEFAULT   14 typeinfo for Shape",
	}

	dm := demangler.NewNative(demangler.ModeFull)
	res := symtab.Classify(context.Background(), lines, dm, symtab.Options{Jobs: 2})

	// foo(int) is a free function and contributes no class; the two
	// Shape symbols land in both Functions and the Shape bucket.
	require.Len(t, res.Functions, 3)
	assert.Equal(t, "foo(int)", res.Functions[0].Demangled)
	assert.Empty(t, res.Functions[0].Sig.ClassName)
	require.Contains(t, res.Classes, "Shape")
	require.Len(t, res.Classes["Shape"], 2)

	vt := vtable.Analyze(lines)
	inheritance := vtable.InferInheritance(vt)
	models := classmodel.Assemble(res.Classes, vt, inheritance)

	require.Len(t, models, 1)
	shape := models[0]
	assert.Equal(t, "Shape", shape.Name)
	assert.True(t, shape.IsPolymorphic)
	assert.Equal(t, vtable.Heuristic, shape.Confidence)

	require.Len(t, shape.Constructors, 1)
	assert.Equal(t, "Shape", shape.Constructors[0].MethodName)
	require.Len(t, shape.InstanceMethods, 1)
	assert.Equal(t, "draw", shape.InstanceMethods[0].MethodName)
	assert.Equal(t, "()", shape.InstanceMethods[0].Params)
	assert.Equal(t, uint64(0x1200), shape.InstanceMethods[0].Offset)
}

// A dump with only a free function yields no classes at all.
func TestEndToEndFreeFunctionOnly(t *testing.T) {
	lines := []string{
		"     1: 0000000000001100    32 FUNC    GLOBAL DEFAULT   12 _Z3fooi",
	}

	dm := demangler.NewNative(demangler.ModeFull)
	res := symtab.Classify(context.Background(), lines, dm, symtab.Options{})

	assert.Empty(t, res.Classes)
	require.Len(t, res.Functions, 1)
	assert.Equal(t, "foo(int)", res.Functions[0].Demangled)

	models := classmodel.Assemble(res.Classes, vtable.Analyze(lines), nil)
	assert.Empty(t, models)
}
