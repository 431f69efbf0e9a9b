package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists uploaded image bytes under generated names. The
// image service records metadata separately; a file whose metadata write
// failed stays on disk unindexed rather than being deleted.
type FileStore interface {
	Save(name string, data []byte) error
	Open(name string) (*os.File, error)
	Remove(name string) error
}

type localStore struct {
	root string
}

// NewLocalStore creates (if needed) and wraps a directory on disk.
func NewLocalStore(root string) (FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localStore{root: root}, nil
}

func (s *localStore) path(name string) (string, error) {
	// Stored names are generated server-side, but reads come from a URL
	// parameter, so traversal is rejected here.
	cleaned := filepath.Base(filepath.Clean(name))
	if cleaned != name || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.root, cleaned), nil
}

func (s *localStore) Save(name string, data []byte) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *localStore) Open(name string) (*os.File, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (s *localStore) Remove(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(p)
}
