package demangler

import (
	"context"
	"testing"
)

func TestIsMangled(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"_Z3fooi", true},
		{"_ZN5Shape4drawEv", true},
		{"main", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsMangled(tt.name); got != tt.want {
			t.Errorf("IsMangled(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNative_Demangle(t *testing.T) {
	n := NewNative(ModeFull)

	got, ok := n.Demangle(context.Background(), "_Z3fooi")
	if !ok {
		t.Fatal("expected _Z3fooi to demangle")
	}
	if got != "foo(int)" {
		t.Errorf("Demangle(_Z3fooi) = %q, want foo(int)", got)
	}

	// Member function with a scope path.
	got, ok = n.Demangle(context.Background(), "_ZN5Shape4drawEv")
	if !ok {
		t.Fatal("expected _ZN5Shape4drawEv to demangle")
	}
	if got != "Shape::draw()" {
		t.Errorf("Demangle(_ZN5Shape4drawEv) = %q, want Shape::draw()", got)
	}
}

func TestNative_MissReportsNotOK(t *testing.T) {
	n := NewNative(ModeFull)
	if _, ok := n.Demangle(context.Background(), "plain_c_symbol"); ok {
		t.Error("plain C symbol should not demangle")
	}
}
