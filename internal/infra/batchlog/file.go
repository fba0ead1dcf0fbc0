package batchlog

import (
	"context"
	"os"
	"path/filepath"
)

// Store writes one JSON file per accepted batch into a flat log
// directory. The directory is created once at construction; writes
// overwrite without collision detection (last writer wins).
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save implements batch.Store.
func (s *Store) Save(_ context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
