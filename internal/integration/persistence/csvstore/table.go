// Package csvstore persists ledgers and operational tables as ';'-separated text files.
package csvstore

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Separator is the field delimiter of every table.
const Separator = ';'

// Table is a decoded delimited file addressed by trimmed column label.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// NewTable builds a Table, trimming header labels.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: make([]string, len(header)), Rows: rows, index: make(map[string]int, len(header))}
	for i, h := range header {
		label := strings.TrimSpace(h)
		t.Header[i] = label
		if _, dup := t.index[label]; !dup {
			t.index[label] = i
		}
	}
	return t
}

// Has reports whether the column exists.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Get returns the trimmed cell of column in row, or "" when the column or cell is absent.
func (t *Table) Get(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// FindColumn returns the first header label accepted by match.
func (t *Table) FindColumn(match func(label string) bool) (string, bool) {
	for _, h := range t.Header {
		if match(h) {
			return h, true
		}
	}
	return "", false
}

// DecodeTable parses delimited content. A UTF-8 BOM is dropped; content that is not valid
// UTF-8 is decoded as Windows-1252. Blank lines are skipped.
func DecodeTable(content []byte) (*Table, error) {
	var reader io.Reader
	if utf8.Valid(content) {
		reader = transform.NewReader(bytes.NewReader(content), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	} else {
		reader = transform.NewReader(bytes.NewReader(content), charmap.Windows1252.NewDecoder())
	}

	r := csv.NewReader(reader)
	r.Comma = Separator
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}
	if len(records) == 0 {
		return NewTable(nil, nil), nil
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return NewTable(records[0], rows), nil
}

// ReadTable reads and decodes the file at path. A missing file returns an error wrapping
// os.ErrNotExist.
func ReadTable(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeTable(content)
}

// EncodeTable renders header and rows as UTF-8 ';'-separated text.
func EncodeTable(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = Separator
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	locksMu sync.Mutex
	locks   = map[string]*sync.Mutex{}
)

func lockFor(path string) *sync.Mutex {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	locksMu.Lock()
	defer locksMu.Unlock()
	mu, ok := locks[abs]
	if !ok {
		mu = &sync.Mutex{}
		locks[abs] = mu
	}
	return mu
}

// WriteTable replaces the file at path with the encoded table. The content goes to a
// temporary file in the same directory which is then renamed over the target; writers
// of the same path within this process are serialized.
func WriteTable(path string, header []string, rows [][]string) error {
	content, err := EncodeTable(header, rows)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}

	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// IsMissing reports whether err means the backing file does not exist.
func IsMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Decoder implements adapter.TableDecoder with DecodeTable.
type Decoder struct{}

// Decode returns the trimmed header and the non-blank rows of content.
func (Decoder) Decode(content []byte) ([]string, [][]string, error) {
	table, err := DecodeTable(content)
	if err != nil {
		return nil, nil, err
	}
	return table.Header, table.Rows, nil
}
