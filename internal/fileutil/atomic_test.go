package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "scores.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`{"a":"1"}`), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"1"}`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "scores.json", entries[0].Name())
}

func TestWriteFileAtomicOverwriteAndCreateParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deeper", "scores.json")

	require.NoError(t, WriteFileAtomic(path, []byte("initial"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("updated"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "updated", string(data))
}

func TestWriteFileAtomicUnwritableDir(t *testing.T) {
	t.Parallel()

	// A regular file where a directory is expected cannot be created.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := WriteFileAtomic(filepath.Join(blocker, "scores.json"), []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestReadFileIfExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	data, err := ReadFileIfExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Nil(t, data)

	path := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(path, []byte("7"), 0o644))
	data, err = ReadFileIfExists(path)
	require.NoError(t, err)
	assert.Equal(t, "7", string(data))
}
