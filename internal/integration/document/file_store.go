package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
)

// FileDocumentStore serves the invoice document configured on disk.
type FileDocumentStore struct {
	path string
}

// NewFileDocumentStore creates a new FileDocumentStore. An empty path means no default document.
func NewFileDocumentStore(path string) *FileDocumentStore {
	return &FileDocumentStore{path: path}
}

// DefaultDocument reads the configured document.
func (s *FileDocumentStore) DefaultDocument(_ context.Context) (*adapter.Document, error) {
	if s.path == "" {
		return nil, fmt.Errorf("%w: no invoice document configured", domainerror.ErrSourceUnavailable)
	}
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrSourceUnavailable, err)
	}
	return &adapter.Document{Name: filepath.Base(s.path), Content: content}, nil
}
