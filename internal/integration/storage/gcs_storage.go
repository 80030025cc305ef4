// Package storage stores ledger backups in Google Cloud Storage or a local directory.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"

	"github.com/freight-backoffice/backend/internal/application/adapter"
)

// GCSStorage implements adapter.BlobStorage on a Cloud Storage bucket.
// A client is opened per call, using application default credentials.
type GCSStorage struct {
	bucket string
	prefix string
	now    func() time.Time
}

// NewGCSStorage creates a new GCSStorage writing objects under prefix.
func NewGCSStorage(bucket, prefix string) *GCSStorage {
	return &GCSStorage{bucket: bucket, prefix: prefix, now: time.Now}
}

// Put uploads content as the object prefix+name.
func (s *GCSStorage) Put(ctx context.Context, name string, content []byte) (*adapter.BlobObject, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	objectName := s.prefix + name
	w := client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "text/csv; charset=utf-8"

	if _, err := io.Copy(w, bytes.NewReader(content)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("copy to GCS object: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close GCS writer: %w", err)
	}

	location := fmt.Sprintf("gs://%s/%s", s.bucket, objectName)
	slog.Info("Backup uploaded", "location", location, "bytes", len(content))

	return &adapter.BlobObject{
		Location:  location,
		Size:      int64(len(content)),
		CreatedAt: s.now(),
	}, nil
}

var _ adapter.BlobStorage = (*GCSStorage)(nil)
