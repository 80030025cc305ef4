// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the sign label of a ledger transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Receita"
	TransactionTypeExpense TransactionType = "Despesa"
)

// TypeForAmount returns Receita for positive amounts and Despesa otherwise.
func TypeForAmount(amount decimal.Decimal) TransactionType {
	if amount.IsPositive() {
		return TransactionTypeIncome
	}
	return TransactionTypeExpense
}

// Transaction represents one entry of the financial ledger.
// ExternalID is the source-assigned identifier and the ledger's unique key.
type Transaction struct {
	ExternalID          string
	Date                time.Time
	Amount              decimal.Decimal // Negative for outflows, positive for inflows
	Type                TransactionType
	Description         string
	Memo                string
	Category            string
	CostCenter          string
	Department          string
	ReconciledReference string // Empty until an operator pairs it with a document

	// Unparsed keeps the original text of cells the ledger could not read, keyed by
	// field. Such rows stay in the ledger but are left out of aggregates.
	Unparsed map[TransactionField]string
}

// TransactionField names a ledger cell that may fail to parse.
type TransactionField string

const (
	FieldDate   TransactionField = "date"
	FieldAmount TransactionField = "amount"
)

// NewTransaction creates a Transaction with the date truncated to its calendar day.
func NewTransaction(externalID string, date time.Time, amount decimal.Decimal, description, memo string) *Transaction {
	return &Transaction{
		ExternalID:  externalID,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Amount:      amount,
		Type:        TypeForAmount(amount),
		Description: description,
		Memo:        memo,
	}
}

// IsReconciled reports whether the transaction already carries a document reference.
func (t *Transaction) IsReconciled() bool {
	return t.ReconciledReference != ""
}

// IsMalformed reports whether any cell of the transaction was unreadable.
func (t *Transaction) IsMalformed() bool {
	return len(t.Unparsed) > 0
}

// MarkUnparsed records the original text of an unreadable cell.
func (t *Transaction) MarkUnparsed(field TransactionField, text string) {
	if t.Unparsed == nil {
		t.Unparsed = make(map[TransactionField]string)
	}
	t.Unparsed[field] = text
}

// RawText returns the original text of field when it was unreadable.
func (t *Transaction) RawText(field TransactionField) (string, bool) {
	text, ok := t.Unparsed[field]
	return text, ok
}

// ApplyClassification sets the three classification labels.
func (t *Transaction) ApplyClassification(category, costCenter, department string) {
	t.Category = category
	t.CostCenter = costCenter
	t.Department = department
}

// TransactionFilter selects ledger transactions by label. Empty sets match everything.
type TransactionFilter struct {
	Categories  []string
	CostCenters []string
	Departments []string
}

// Matches reports whether the transaction passes every non-empty label set.
func (f TransactionFilter) Matches(t *Transaction) bool {
	return inSet(f.Categories, t.Category) &&
		inSet(f.CostCenters, t.CostCenter) &&
		inSet(f.Departments, t.Department)
}

func inSet(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

// TransactionTotals represents aggregated totals for a set of transactions.
type TransactionTotals struct {
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
	Balance decimal.Decimal
}
