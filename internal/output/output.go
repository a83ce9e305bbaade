// Package output writes sodump analysis results to files.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Dir creates and returns the per-library output directory,
// "<base>/<lib>_dump".
func Dir(base, lib string) (string, error) {
	dir := filepath.Join(base, lib+"_dump")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("output: mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// WriteJSON writes v as indented JSON to path.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	return nil
}

// WriteFile creates path and hands it to a render function.
func WriteFile(path string, renderTo func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	if err := renderTo(f); err != nil {
		f.Close()
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", path, err)
	}
	return nil
}

// WriteText writes a pre-rendered string (DOT graphs and the like).
func WriteText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return nil
}
