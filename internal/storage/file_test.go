package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/contactbook/internal/config"
	"github.com/tartampluch/contactbook/internal/storage"
)

func TestFileStore_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := storage.NewFileStore(path)

	require.NoError(t, store.Write(context.Background(), []byte(`{"a":1}`)))
	require.NoError(t, store.Write(context.Background(), []byte(`{}`)))

	data, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data), "A second write replaces the whole file")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, config.FilePermUserRW, info.Mode().Perm())
}

// TestFileStore_NoLeftovers verifies the temporary file is renamed away.
func TestFileStore_NoLeftovers(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(filepath.Join(dir, "data.json"))
	require.NoError(t, store.Write(context.Background(), []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.json", entries[0].Name())
}

func TestFileStore_Errors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		store := storage.NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
		_, err := store.Read(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.ErrorContains(t, err, config.ErrStoreRead)
	})

	t.Run("Missing directory", func(t *testing.T) {
		store := storage.NewFileStore(filepath.Join(t.TempDir(), "nope", "data.json"))
		err := store.Write(context.Background(), []byte(`{}`))
		assert.ErrorContains(t, err, config.ErrStoreWrite)
	})

	t.Run("Empty path", func(t *testing.T) {
		store := storage.NewFileStore("")
		_, err := store.Read(context.Background())
		assert.EqualError(t, err, config.ErrStorePathEmpty)
		assert.EqualError(t, store.Write(context.Background(), nil), config.ErrStorePathEmpty)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		store := storage.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
		assert.ErrorIs(t, store.Write(ctx, []byte(`{}`)), context.Canceled)
	})
}
