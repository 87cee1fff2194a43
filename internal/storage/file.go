package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/contactbook/internal/config"
)

// ByteStore persists one opaque document.
// This interface allows for mocking in tests and decoupling from the filesystem.
type ByteStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Location() string
}

// FileStore implements ByteStore on a single file.
type FileStore struct {
	Path string
}

// NewFileStore creates a store for path. The file does not need to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Location returns the file path, for user-facing messages.
func (f *FileStore) Location() string { return f.Path }

// Read returns the whole file.
func (f *FileStore) Read(ctx context.Context) ([]byte, error) {
	if f.Path == "" {
		return nil, errors.New(config.ErrStorePathEmpty)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}
	return data, nil
}

// Write replaces the file with data. The content goes to a temporary file in the same
// directory first and is renamed over the target, so a crash never leaves a truncated file.
func (f *FileStore) Write(ctx context.Context, data []byte) error {
	if f.Path == "" {
		return errors.New(config.ErrStorePathEmpty)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), config.TempFilePattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	tmpName := tmp.Name()
	// Best effort cleanup; after a successful rename the file is already gone.
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := os.Chmod(tmpName, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	if err := os.Rename(tmpName, f.Path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreRename, err)
	}

	slog.Debug(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyPath, f.Path,
		config.LogKeySizeBytes, len(data),
	)
	return nil
}
