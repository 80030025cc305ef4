// Package valueobject contains domain value objects for the freight back-office.
package valueobject

import "fmt"

// WarningKind classifies a recoverable condition met while loading or importing data.
type WarningKind string

const (
	WarningSourceUnavailable WarningKind = "source_unavailable"
	WarningMalformedRecord   WarningKind = "malformed_record"
	WarningMissingColumn     WarningKind = "missing_column"
)

// Warning is one user-visible message attached to a partial result.
type Warning struct {
	Kind    WarningKind
	Message string
}

// LoadReport collects the recoverable conditions of a load so they are returned
// next to the rows instead of being swallowed.
type LoadReport struct {
	RowsRead      int
	MalformedRows int
	Warnings      []Warning
}

// NewLoadReport creates an empty report.
func NewLoadReport() *LoadReport {
	return &LoadReport{}
}

// SourceUnavailable records that an optional dependency could not serve the load.
func (r *LoadReport) SourceUnavailable(format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Kind: WarningSourceUnavailable, Message: fmt.Sprintf(format, args...)})
}

// MissingColumn records that column was absent and a default was substituted.
func (r *LoadReport) MissingColumn(column string) {
	r.Warnings = append(r.Warnings, Warning{
		Kind:    WarningMissingColumn,
		Message: fmt.Sprintf("column %q not found, default values used", column),
	})
}

// Malformed records count rows that failed coercion.
func (r *LoadReport) Malformed(count int, format string, args ...any) {
	if count <= 0 {
		return
	}
	r.MalformedRows += count
	r.Warnings = append(r.Warnings, Warning{
		Kind:    WarningMalformedRecord,
		Message: fmt.Sprintf("%d row(s): %s", count, fmt.Sprintf(format, args...)),
	})
}

// Merge appends other's counters and warnings into r.
func (r *LoadReport) Merge(other *LoadReport) {
	if other == nil {
		return
	}
	r.RowsRead += other.RowsRead
	r.MalformedRows += other.MalformedRows
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Has reports whether a warning of the given kind was recorded.
func (r *LoadReport) Has(kind WarningKind) bool {
	if r == nil {
		return false
	}
	for _, w := range r.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

// Messages returns the warning texts in the order they were recorded.
func (r *LoadReport) Messages() []string {
	if r == nil {
		return []string{}
	}
	messages := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		messages[i] = w.Message
	}
	return messages
}
