// Package document extracts (document number, date, value) lines from invoice documents.
package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
	"github.com/freight-backoffice/backend/internal/integration/persistence/csvstore"
)

// invoiceLine matches "<number of 5+ digits> ... <dd/mm/yyyy> ... <1.234,56>" on one line.
var invoiceLine = regexp.MustCompile(`(\d{5,})\s+.*?\s+(\d{2}/\d{2}/\d{4}).*?([\d\.]+,[\d]{2})`)

// Column labels of spreadsheet listings.
const (
	ColumnNumber = "Número"
	ColumnDate   = "Data"
	ColumnValue  = "Valor"
)

// Extractor implements adapter.DocumentExtractor for text, CSV, XLSX and XLS documents.
type Extractor struct{}

// NewExtractor creates a new Extractor instance.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract dispatches on the document extension. Rows that cannot be read are skipped.
func (e *Extractor) Extract(_ context.Context, doc adapter.Document) ([]valueobject.DocumentLine, error) {
	ext := strings.ToLower(filepath.Ext(doc.Name))
	switch ext {
	case ".txt", ".text":
		return ExtractText(string(doc.Content)), nil
	case ".csv":
		table, err := csvstore.DecodeTable(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainerror.ErrMalformedRecord, err)
		}
		return linesFromTable(table)
	case ".xlsx":
		rows, err := xlsxRows(doc.Content)
		if err != nil {
			return nil, err
		}
		return linesFromRows(rows)
	case ".xls":
		rows, err := xlsRows(doc.Content)
		if err != nil {
			return nil, err
		}
		return linesFromRows(rows)
	case ".pdf":
		return nil, domainerror.NewReconciliationError(
			domainerror.ErrCodeUnsupportedDocument,
			"PDF invoices must be uploaded as extracted text",
			domainerror.ErrUnsupportedDocument,
		)
	default:
		return nil, domainerror.NewReconciliationError(
			domainerror.ErrCodeUnsupportedDocument,
			fmt.Sprintf("unsupported document extension %q", ext),
			domainerror.ErrUnsupportedDocument,
		)
	}
}

// ExtractText scans invoice text line by line.
func ExtractText(text string) []valueobject.DocumentLine {
	lines := make([]valueobject.DocumentLine, 0)
	for _, m := range invoiceLine.FindAllStringSubmatch(text, -1) {
		value, err := valueobject.ParseBRL(m[3])
		if err != nil {
			slog.Warn("Skipping invoice line with unreadable value", "document_number", m[1], "value", m[3])
			continue
		}
		line := valueobject.DocumentLine{DocumentNumber: m[1], Value: value}
		if d, err := time.Parse("02/01/2006", m[2]); err == nil {
			line.Date = &d
		}
		lines = append(lines, line)
	}
	return lines
}

func xlsxRows(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrMalformedRecord, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domainerror.ErrMalformedRecord)
	}
	return f.GetRows(sheets[0])
}

func xlsRows(content []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrMalformedRecord, err)
	}
	if len(workbook.GetSheets()) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domainerror.ErrMalformedRecord)
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrMalformedRecord, err)
	}

	var rows [][]string
	for _, row := range sheet.GetRows() {
		var cells []string
		for _, cell := range row.GetCols() {
			cells = append(cells, cell.GetString())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// linesFromRows uses the first row carrying a Número column as the header.
func linesFromRows(rows [][]string) ([]valueobject.DocumentLine, error) {
	for i, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) == ColumnNumber {
				return linesFromTable(csvstore.NewTable(row, rows[i+1:]))
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", domainerror.ErrMissingColumn, ColumnNumber)
}

func linesFromTable(table *csvstore.Table) ([]valueobject.DocumentLine, error) {
	if !table.Has(ColumnNumber) {
		return nil, fmt.Errorf("%w: %s", domainerror.ErrMissingColumn, ColumnNumber)
	}
	fold := cases.Fold()
	valueColumn, ok := table.FindColumn(func(label string) bool {
		return strings.HasPrefix(fold.String(label), fold.String(ColumnValue))
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", domainerror.ErrMissingColumn, ColumnValue)
	}

	lines := make([]valueobject.DocumentLine, 0, len(table.Rows))
	skipped := 0
	for _, row := range table.Rows {
		number := table.Get(row, ColumnNumber)
		if number == "" {
			continue
		}
		value, err := csvstore.ParseAmount(table.Get(row, valueColumn))
		if err != nil {
			skipped++
			continue
		}
		line := valueobject.DocumentLine{DocumentNumber: number, Value: value}
		if d, err := csvstore.ParseDate(table.Get(row, ColumnDate)); err == nil {
			line.Date = &d
		}
		lines = append(lines, line)
	}
	if skipped > 0 {
		slog.Warn("Skipped invoice rows with unreadable values", "count", skipped)
	}
	return lines, nil
}
