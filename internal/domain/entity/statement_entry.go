package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementEntry is one transaction as produced by a bank-statement parser.
// SourceID keeps whatever type the parser produced; the normalizer coerces it to string.
type StatementEntry struct {
	SourceID any
	PostedAt time.Time
	Amount   decimal.Decimal
	Payee    string
	Memo     string
}
