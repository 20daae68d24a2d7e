package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore is a BlobStore keeping one JSON file per key inside a directory.
// Writes go through a temp file and an atomic rename so a crash mid-write
// never leaves a truncated blob behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
// If dir is empty it defaults to ~/.fillforge/data.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".fillforge", "data")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("storage: create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") {
		return "", fmt.Errorf("storage: invalid blob key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get returns the blob stored under key, or ErrNoBlob.
func (s *FileStore) Get(key string) ([]byte, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoBlob
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

// Put stores the blob under key via temp file and atomic rename.
func (s *FileStore) Put(key string, data []byte) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage: rename %s: %w", path, err)
	}
	return nil
}

// Close is a no-op for file stores.
func (s *FileStore) Close() error { return nil }

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string { return s.dir }
