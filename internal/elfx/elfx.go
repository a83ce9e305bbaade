// Package elfx validates shared-object inputs and reports header facts
// (architecture, class, segments) for the analysis banner. Symbol
// extraction itself goes through external dumpers; this package only
// answers "is this worth handing to them".
package elfx

import (
	"debug/elf"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrNotELF    = errors.New("elfx: not an ELF file")
	ErrNotShared = errors.New("elfx: not a shared object")
)

// File wraps a debug/elf.File with the few queries the dump pipeline needs.
type File struct {
	ELF  *elf.File
	f    *os.File
	size int64
}

// Open opens an ELF file and validates it is a shared object.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("elfx: open: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("elfx: stat: %w", err)
	}

	ef, err := elf.NewFile(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrNotELF, err)
	}
	if ef.Type != elf.ET_DYN {
		f.Close()
		return nil, fmt.Errorf("%w: type %v", ErrNotShared, ef.Type)
	}

	return &File{ELF: ef, f: f, size: info.Size()}, nil
}

// Close releases resources.
func (f *File) Close() error {
	return f.f.Close()
}

// FileSize returns the size of the underlying file.
func (f *File) FileSize() int64 { return f.size }

// Machine returns a readable architecture name, e.g. "AARCH64" or "X86_64".
func (f *File) Machine() string {
	return strings.TrimPrefix(f.ELF.Machine.String(), "EM_")
}

// Class returns "32-bit" or "64-bit".
func (f *File) Class() string {
	return strings.TrimPrefix(f.ELF.Class.String(), "ELFCLASS") + "-bit"
}

// SegmentInfo describes a PT_LOAD segment.
type SegmentInfo struct {
	Vaddr  uint64
	Memsz  uint64
	Filesz uint64
	Offset uint64
	Flags  elf.ProgFlag
}

// Perm renders the RWX flag string.
func (s SegmentInfo) Perm() string {
	perm := ""
	if s.Flags&elf.PF_R != 0 {
		perm += "R"
	}
	if s.Flags&elf.PF_W != 0 {
		perm += "W"
	}
	if s.Flags&elf.PF_X != 0 {
		perm += "X"
	}
	return perm
}

// LoadSegments returns all PT_LOAD segments.
func (f *File) LoadSegments() []SegmentInfo {
	var segs []SegmentInfo
	for _, p := range f.ELF.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		segs = append(segs, SegmentInfo{
			Vaddr:  p.Vaddr,
			Memsz:  p.Memsz,
			Filesz: p.Filesz,
			Offset: p.Off,
			Flags:  p.Flags,
		})
	}
	return segs
}
