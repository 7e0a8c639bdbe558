package disk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSaveAndServePath(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	name, err := storage.Save("dune.png", strings.NewReader("poster-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "dune.png", name)
	assert.True(t, storage.Exists("dune.png"))

	path, err := storage.Path("dune.png")
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "poster-bytes", string(content))
}

func TestStorageRejectsDuplicateName(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save("dune.png", strings.NewReader("first"))
	require.NoError(t, err)

	_, err = storage.Save("dune.png", strings.NewReader("second"))
	assert.Error(t, err)
}

func TestStorageStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewStorage(filepath.Join(dir, "posters"))
	require.NoError(t, err)

	name, err := storage.Save("../../escape.png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "escape.png", name)

	_, err = os.Stat(filepath.Join(dir, "posters", "escape.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestStorageDeleteIsIdempotent(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Save("dune.png", strings.NewReader("data"))
	require.NoError(t, err)

	require.NoError(t, storage.Delete("dune.png"))
	assert.False(t, storage.Exists("dune.png"))
	assert.NoError(t, storage.Delete("dune.png"))

	_, err = storage.Path("dune.png")
	assert.Error(t, err)
}
