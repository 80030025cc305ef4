package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/freight-backoffice/backend/internal/application/adapter"
)

// LocalStorage implements adapter.BlobStorage on a directory.
type LocalStorage struct {
	dir string
	now func() time.Time
}

// NewLocalStorage creates a new LocalStorage rooted at dir.
func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir, now: time.Now}
}

// Put writes content to dir/name. Names may not leave the directory.
func (s *LocalStorage) Put(_ context.Context, name string, content []byte) (*adapter.BlobObject, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid object name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, fmt.Errorf("write backup: %w", err)
	}

	return &adapter.BlobObject{
		Location:  path,
		Size:      int64(len(content)),
		CreatedAt: s.now(),
	}, nil
}

var _ adapter.BlobStorage = (*LocalStorage)(nil)
