package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey_ContentAddressed(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.so")
	b := filepath.Join(dir, "b.so")
	require.NoError(t, os.WriteFile(a, []byte("same bytes"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("same bytes"), 0644))

	ka, err := CacheKey(a)
	require.NoError(t, err)
	kb, err := CacheKey(b)
	require.NoError(t, err)
	assert.Equal(t, ka, kb, "identical contents must share a key")

	require.NoError(t, os.WriteFile(b, []byte("different bytes"), 0644))
	kb2, err := CacheKey(b)
	require.NoError(t, err)
	assert.NotEqual(t, ka, kb2)
}

func TestCacheRoundTrip(t *testing.T) {
	path := CachePath(t.TempDir(), "deadbeef")

	_, ok := LoadCache(path)
	assert.False(t, ok, "missing cache must miss")

	lines := []string{"1: 0000000000001234 16 FUNC GLOBAL DEFAULT 12 _Z3fooi", "vtable for Shape"}
	require.NoError(t, StoreCache(path, lines))

	got, ok := LoadCache(path)
	require.True(t, ok)
	assert.Equal(t, lines, got)
}

func TestLoadCache_EmptyFileMisses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_symbols.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	_, ok := LoadCache(path)
	assert.False(t, ok)
}
