package elfx

import (
	"debug/elf"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenRejectsNonELF(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "notelf.so")
	if err := os.WriteFile(tmp, []byte("not an ELF file at all"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(tmp)
	if !errors.Is(err, ErrNotELF) {
		t.Fatalf("err = %v, want ErrNotELF", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.so"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSegmentPerm(t *testing.T) {
	tests := []struct {
		flags uint32
		want  string
	}{
		{0x4, "R"},
		{0x5, "RX"},
		{0x6, "RW"},
		{0x7, "RWX"},
		{0x0, ""},
	}
	for _, tt := range tests {
		s := SegmentInfo{Flags: elf.ProgFlag(tt.flags)}
		if got := s.Perm(); got != tt.want {
			t.Errorf("Perm(0x%x) = %q, want %q", tt.flags, got, tt.want)
		}
	}
}

func FuzzELFOpen(f *testing.F) {
	// Seed with a valid ELF header prefix and garbage.
	f.Add([]byte("\x7fELF\x02\x01\x01\x00\x00\x00\x00\x00\x00\x00\x00\x00"))
	f.Add([]byte("not an elf at all"))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		tmp := filepath.Join(t.TempDir(), "fuzz.so")
		if err := os.WriteFile(tmp, data, 0644); err != nil {
			t.Fatal(err)
		}
		ef, err := Open(tmp)
		if err != nil {
			return // expected
		}
		ef.FileSize()
		ef.LoadSegments()
		ef.Machine()
		ef.Class()
		ef.Close()
	})
}
