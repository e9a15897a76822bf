package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	s := New(path)
	s.Set("k1", []string{"a.js|error|x"}, true)
	s.Set("k2", nil, false)

	require.NoError(t, s.Save())

	s2 := New(path)
	require.NoError(t, s2.Load())
	require.Equal(t, 2, s2.Len())

	e1, ok := s2.Get("k1")
	assert.True(t, ok)
	assert.Equal(t, []string{"a.js|error|x"}, e1.Lines)
	assert.True(t, e1.Warnings)
	assert.NotEmpty(t, e1.UpdatedAt)

	e2, ok := s2.Get("k2")
	assert.True(t, ok)
	assert.Empty(t, e2.Lines)
	assert.False(t, e2.Warnings)

	_, ok = s2.Get("nonexistent")
	assert.False(t, ok)
}

func TestStoreLoadNonexistent(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.json"))
	assert.NoError(t, s.Load())
	assert.Empty(t, s.Entries)
}

func TestStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	err := New(path).Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing")
}

func TestStoreCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "deep", "cache.json")

	s := New(path)
	s.Set("key", []string{"line"}, false)
	require.NoError(t, s.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreSaveSkipsWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, New(path).Save())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "an unchanged store writes nothing")
}

func TestStoreRejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.json")
	require.NoError(t, os.WriteFile(target, []byte(`{"entries":{}}`), 0o600))
	link := filepath.Join(dir, "cache.json")
	require.NoError(t, os.Symlink(target, link))

	s := New(link)
	require.ErrorContains(t, s.Load(), "symlink")
	s.Set("k", nil, false)
	require.ErrorContains(t, s.Save(), "symlink")
}

func TestKey(t *testing.T) {
	a := Key([]byte("ab"), []byte("c"))
	b := Key([]byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Key([]byte("ab"), []byte("c")))
	assert.Len(t, a, 64)
}

func TestDefaultPath(t *testing.T) {
	p := DefaultPath()
	assert.Contains(t, p, "cache.json")
	assert.Contains(t, p, ".difflint")
}
