// Package export serializes derived tables as downloadable CSV or XLSX files.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/freight-backoffice/backend/internal/integration/persistence/csvstore"
)

// Format selects the download representation of a table.
type Format string

const (
	FormatJSON Format = ""
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat reads a ?format= query value. Empty means JSON.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return FormatJSON, fmt.Errorf("unsupported export format %q", value)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// Table is the exact header and rows shown by a view.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// FileName is the attachment name of the table in the given format.
func (t Table) FileName(f Format) string {
	return t.Name + "." + string(f)
}

// Encode renders the table in the given format.
func Encode(f Format, t Table) ([]byte, error) {
	switch f {
	case FormatCSV:
		return csvstore.EncodeTable(t.Header, t.Rows)
	case FormatXLSX:
		return encodeXLSX(t)
	}
	return nil, fmt.Errorf("format %q is not a file format", f)
}

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

func encodeXLSX(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Name
	if sheet == "" {
		sheet = "Sheet1"
	}
	if len([]rune(sheet)) > maxSheetName {
		sheet = string([]rune(sheet)[:maxSheetName])
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, t.Header); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, line int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", line, err)
	}
	return nil
}
