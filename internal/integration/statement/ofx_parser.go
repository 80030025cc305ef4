// Package statement parses bank-statement files.
package statement

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
)

// OFXParser implements adapter.StatementParser for OFX and QFX files, covering bank and
// credit card statements.
type OFXParser struct{}

// NewOFXParser creates a new OFXParser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

// Parse returns every statement transaction in file order. An unreadable file returns an
// error wrapping domainerror.ErrMalformedRecord.
func (p *OFXParser) Parse(_ context.Context, content []byte) ([]entity.StatementEntry, error) {
	resp, err := ofxgo.ParseResponse(bytes.NewReader(content))
	if err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeMalformedRecord,
			"unreadable statement file",
			fmt.Errorf("%w: %w", domainerror.ErrMalformedRecord, err),
		)
	}

	entries := make([]entity.StatementEntry, 0)
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			entries = appendTransactions(entries, stmt.BankTranList.Transactions)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			entries = appendTransactions(entries, stmt.BankTranList.Transactions)
		}
	}

	slog.Debug("Statement parsed", "entries", len(entries))
	return entries, nil
}

func appendTransactions(entries []entity.StatementEntry, txs []ofxgo.Transaction) []entity.StatementEntry {
	for _, t := range txs {
		amount := amountFromRat(&t.TrnAmt.Rat)

		payee := string(t.Name)
		if payee == "" && t.Payee != nil {
			payee = string(t.Payee.Name)
		}

		entries = append(entries, entity.StatementEntry{
			SourceID: string(t.FiTID),
			PostedAt: postedDay(t.DtPosted.Time),
			Amount:   amount,
			Payee:    payee,
			Memo:     string(t.Memo),
		})
	}
	return entries
}

// amountFromRat converts the parsed amount without rounding. OFX amounts are decimal
// literals, so the quotient always terminates.
func amountFromRat(r *big.Rat) decimal.Decimal {
	return decimal.NewFromBigInt(r.Num(), 0).Div(decimal.NewFromBigInt(r.Denom(), 0))
}

// postedDay keeps the calendar day the bank reported, whatever its offset.
func postedDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var _ adapter.StatementParser = (*OFXParser)(nil)
