package valueobject

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus is the outcome of checking one document line against the shipment ledger.
type ReconciliationStatus string

const (
	StatusNotFound   ReconciliationStatus = "Não encontrado"
	StatusReconciled ReconciliationStatus = "Conciliado"
	StatusDivergent  ReconciliationStatus = "Divergente"
)

// ReconciliationTolerance is the exclusive absolute delta under which values are considered equal.
var ReconciliationTolerance = decimal.NewFromInt(1)

// StatusForDelta classifies a delta: Reconciled iff |delta| < 1.00, else Divergent.
func StatusForDelta(delta decimal.Decimal) ReconciliationStatus {
	if delta.Abs().LessThan(ReconciliationTolerance) {
		return StatusReconciled
	}
	return StatusDivergent
}

// DocumentLine is one (document number, date, value) tuple extracted from an external invoice.
type DocumentLine struct {
	DocumentNumber string
	Date           *time.Time
	Value          decimal.Decimal
}

// ReconciliationRecord is one row of an automatic reconciliation run.
// LedgerValue and Delta are nil when Status is StatusNotFound.
type ReconciliationRecord struct {
	DocumentNumber string
	DocumentDate   *time.Time
	InvoiceValue   decimal.Decimal
	LedgerValue    *decimal.Decimal
	Delta          *decimal.Decimal
	Status         ReconciliationStatus
}

// ReconciliationSummary holds per-status counts of a reconciliation run.
type ReconciliationSummary struct {
	Reconciled int
	Divergent  int
	NotFound   int
	Total      int
}

// Add counts one record of the given status.
func (s *ReconciliationSummary) Add(status ReconciliationStatus) {
	switch status {
	case StatusReconciled:
		s.Reconciled++
	case StatusDivergent:
		s.Divergent++
	case StatusNotFound:
		s.NotFound++
	}
	s.Total++
}

// Counts returns the summary keyed by status label.
func (s ReconciliationSummary) Counts() map[ReconciliationStatus]int {
	return map[ReconciliationStatus]int{
		StatusReconciled: s.Reconciled,
		StatusDivergent:  s.Divergent,
		StatusNotFound:   s.NotFound,
	}
}
