package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// FileBackend persists each key as a JSON file under a base directory.
type FileBackend struct {
	baseDir string
}

// NewFileBackend ensures the base directory exists and returns a handle.
func NewFileBackend(baseDir string) (*FileBackend, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileBackend{baseDir: baseDir}, nil
}

func (b *FileBackend) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(b.resolve(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read store entry: %w", err)
	}
	return string(data), true, nil
}

// Set writes through a temp file and renames it so readers never observe a partial entry.
func (b *FileBackend) Set(_ context.Context, key, value string) error {
	tmp, err := os.CreateTemp(b.baseDir, ".entry-*")
	if err != nil {
		return fmt.Errorf("create store entry: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write store entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.resolve(key)); err != nil {
		return fmt.Errorf("commit store entry: %w", err)
	}
	return nil
}

func (b *FileBackend) Delete(_ context.Context, key string) error {
	if err := os.Remove(b.resolve(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete store entry: %w", err)
	}
	return nil
}

// Path exposes the file backing key.
func (b *FileBackend) Path(key string) string {
	return b.resolve(key)
}

func (b *FileBackend) resolve(key string) string {
	return filepath.Join(b.baseDir, url.PathEscape(key)+".json")
}
