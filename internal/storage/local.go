package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes media to a directory on disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, filename, contentType string, data io.Reader) error {
	if !ValidFilename(filename) {
		return fmt.Errorf("invalid filename: %q", filename)
	}
	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, data)
	return err
}

func (s *LocalStore) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	if !ValidFilename(filename) {
		return nil, fmt.Errorf("invalid filename: %q", filename)
	}
	return os.Open(filepath.Join(s.dir, filename))
}
