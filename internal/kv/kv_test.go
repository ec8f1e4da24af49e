package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/errors"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s.Keys())

	require.NoError(t, s.Set("theme", "mocha"))
	require.NoError(t, s.Set("last_post", "hello-world"))

	reopened, err := Open(path)
	require.NoError(t, err)
	v, ok := reopened.Get("theme")
	require.True(t, ok)
	assert.Equal(t, "mocha", v)
	assert.Equal(t, []string{"last_post", "theme"}, reopened.Keys())

	require.NoError(t, reopened.Delete("last_post"))
	require.NoError(t, reopened.Delete("never-set"))

	again, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"theme"}, again.Keys())
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "state.yaml"))
	require.NoError(t, err)
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("a", "2"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.yaml", entries[0].Name())
}

func TestOpenRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated"), 0644))

	_, err := Open(path)
	require.Error(t, err)
	assert.True(t, errors.IsStorageError(err))

	var storageErr *errors.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, path, storageErr.Path())
	assert.Equal(t, errors.StorageReadFailed, storageErr.Kind())
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))
}

func TestMemoryStore(t *testing.T) {
	var s Store = NewMemoryStore()
	_, ok := s.Get("theme")
	assert.False(t, ok)

	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Set("a", "1"))
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	require.NoError(t, s.Delete("a"))
	assert.Equal(t, []string{"b"}, s.Keys())
}
