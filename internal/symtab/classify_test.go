package symtab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapDemangler resolves names from a fixed table; everything else misses.
type mapDemangler map[string]string

func (m mapDemangler) Demangle(_ context.Context, name string) (string, bool) {
	s, ok := m[name]
	return s, ok
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		want Entry
	}{
		{
			"function row",
			"     1: 0000000000001234    16 FUNC    GLOBAL DEFAULT   12 _Z3fooi",
			true,
			Entry{Offset: 0x1234, Kind: KindFunction, Binding: BindGlobal, RawName: "_Z3fooi"},
		},
		{
			"object row",
			"    42: 00000000000a0b0c     8 OBJECT  WEAK   DEFAULT   20 counter",
			true,
			Entry{Offset: 0xa0b0c, Kind: KindObject, Binding: BindWeak, RawName: "counter"},
		},
		{
			"name with spaces survives (post-c++filt dumps)",
			"     7: 0000000000002000    32 FUNC    LOCAL  DEFAULT   12 void Shape::draw(int, char)",
			true,
			Entry{Offset: 0x2000, Kind: KindFunction, Binding: BindLocal, RawName: "void Shape::draw(int, char)"},
		},
		{"zero offset sentinel 8", "     2: 00000000     0 FUNC    GLOBAL DEFAULT  UND free", false, Entry{}},
		{"zero offset sentinel 16", "     3: 0000000000000000     0 FUNC    GLOBAL DEFAULT   12 x", false, Entry{}},
		{"undefined section index", "     4: 0000000000001000     0 FUNC    GLOBAL DEFAULT  UND malloc", false, Entry{}},
		{"header line", "Symbol table '.dynsym' contains 100 entries:", false, Entry{}},
		{"blank", "", false, Entry{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("entry = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassify_FreeFunction(t *testing.T) {
	lines := []string{"1: 0000000000001234 16 FUNC GLOBAL DEFAULT 12 _Z3fooi"}
	dm := mapDemangler{"_Z3fooi": "int foo(int)"}

	res := Classify(context.Background(), lines, dm, Options{Jobs: 2})

	require.Len(t, res.Functions, 1)
	assert.Equal(t, "int foo(int)", res.Functions[0].Demangled)
	assert.Empty(t, res.Functions[0].Sig.ClassName)
	assert.Empty(t, res.Classes, "no scope separator means no class member")
	assert.Empty(t, res.Variables)
}

func TestClassify_MethodAppearsInBothCollections(t *testing.T) {
	lines := []string{
		"1: 0000000000002000 16 FUNC GLOBAL DEFAULT 12 _ZN5Shape4drawEv",
	}
	dm := mapDemangler{"_ZN5Shape4drawEv": "virtual void Shape::draw()"}

	res := Classify(context.Background(), lines, dm, Options{Jobs: 4})

	require.Len(t, res.Functions, 1, "class methods stay in the function collection")
	require.Contains(t, res.Classes, "Shape")
	require.Len(t, res.Classes["Shape"], 1)

	rec := res.Classes["Shape"][0]
	assert.Equal(t, "draw", rec.MethodName)
	assert.Equal(t, "()", rec.Params)
	assert.Equal(t, uint64(0x2000), rec.Offset)
	assert.True(t, rec.IsVirtual)
}

func TestClassify_DemangleFailureDegrades(t *testing.T) {
	lines := []string{"1: 0000000000003000 16 FUNC GLOBAL DEFAULT 12 _Zbroken"}
	res := Classify(context.Background(), lines, mapDemangler{}, Options{})

	require.Len(t, res.Functions, 1)
	assert.Empty(t, res.Functions[0].Demangled)
	assert.Empty(t, res.Classes)
}

func TestClassify_DeterministicOrder(t *testing.T) {
	// Many lines for one class: bucket order must equal input line order
	// no matter how workers interleave.
	var lines []string
	dm := mapDemangler{}
	names := []string{"aa", "bb", "cc", "dd", "ee", "ff", "gg", "hh"}
	for i, n := range names {
		mangled := "_Zfake" + n
		lines = append(lines, "1: 00000000000"+string('1'+byte(i))+"000 16 FUNC GLOBAL DEFAULT 12 "+mangled)
		dm[mangled] = "void Box::" + n + "()"
	}

	for trial := 0; trial < 4; trial++ {
		res := Classify(context.Background(), lines, dm, Options{Jobs: 3})
		require.Len(t, res.Classes["Box"], len(names))
		for i, rec := range res.Classes["Box"] {
			assert.Equal(t, names[i], rec.MethodName, "bucket order must follow input order")
		}
	}
}

func TestClassify_SkipsUnmatchedLines(t *testing.T) {
	lines := []string{
		"Symbol table '.dynsym' contains 3 entries:",
		"   Num:    Value          Size Type    Bind   Vis      Ndx Name",
		"     1: 0000000000000000     0 FUNC    GLOBAL DEFAULT  UND free",
		"     2: 0000000000001100    24 OBJECT  GLOBAL DEFAULT   20 table",
	}
	res := Classify(context.Background(), lines, nil, Options{Jobs: 1})
	assert.Empty(t, res.Functions)
	require.Len(t, res.Variables, 1)
	assert.Equal(t, "table", res.Variables[0].RawName)
}
