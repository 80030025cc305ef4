package adapter

import (
	"context"
	"time"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// StatementParser turns a bank-statement file into raw entries.
// Unavailable parsers return domainerror.ErrSourceUnavailable; unreadable files
// return domainerror.ErrMalformedRecord.
type StatementParser interface {
	Parse(ctx context.Context, content []byte) ([]entity.StatementEntry, error)
}

// TableDecoder decodes an uploaded delimited file into its header and rows.
type TableDecoder interface {
	Decode(content []byte) (header []string, rows [][]string, err error)
}

// Document is an uploaded or configured invoice document.
type Document struct {
	Name    string
	Content []byte
}

// DocumentExtractor pulls (document number, date, value) lines out of an invoice document.
type DocumentExtractor interface {
	Extract(ctx context.Context, doc Document) ([]valueobject.DocumentLine, error)
}

// BlobObject describes a stored backup.
type BlobObject struct {
	Location  string
	Size      int64
	CreatedAt time.Time
}

// BlobStorage stores backup copies of ledgers.
type BlobStorage interface {
	Put(ctx context.Context, name string, content []byte) (*BlobObject, error)
}

// DocumentStore provides the configured invoice document used when none is uploaded.
type DocumentStore interface {
	DefaultDocument(ctx context.Context) (*Document, error)
}
