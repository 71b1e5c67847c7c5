package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore writes uploaded files under a base directory and returns the
// stored path relative to it. Only that path string is persisted by callers.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save streams the file into <baseDir>/<kind>/<uuid><ext> and returns the
// relative path. The original filename only contributes its extension.
func (s *LocalStore) Save(kind, originalName string, r io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s dir: %w", kind, err)
	}

	name := uuid.NewString() + filepath.Ext(originalName)
	fullPath := filepath.Join(dir, name)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("write file: %w", err)
	}

	return filepath.Join(kind, name), nil
}

// Remove deletes a previously stored file. Missing files are not an error.
func (s *LocalStore) Remove(relPath string) error {
	err := os.Remove(filepath.Join(s.baseDir, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
