package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CacheKey hashes the library file contents. Two invocations over the
// same bytes reuse the same raw symbol dump regardless of path.
func CacheKey(libPath string) (string, error) {
	f, err := os.Open(libPath)
	if err != nil {
		return "", fmt.Errorf("extract: cache key: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("extract: cache key: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CachePath maps a key to its dump file under dir/.cache.
func CachePath(dir, key string) string {
	return filepath.Join(dir, ".cache", key+"_symbols.txt")
}

// LoadCache returns the cached lines for path, or ok=false when no
// usable cache exists.
func LoadCache(path string) ([]string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	s := strings.TrimRight(string(data), "\n")
	if s == "" {
		return nil, false
	}
	return strings.Split(s, "\n"), true
}

// StoreCache writes the raw dump. A failed write removes the partial
// file so a later run never reads a truncated dump.
func StoreCache(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("extract: cache dir: %w", err)
	}
	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		os.Remove(path)
		return fmt.Errorf("extract: cache write: %w", err)
	}
	return nil
}
