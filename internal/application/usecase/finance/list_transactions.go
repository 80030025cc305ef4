// Package finance contains financial-ledger query and triage use cases.
package finance

import (
	"context"
	"fmt"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ListTransactionsInput represents the input for listing ledger transactions.
type ListTransactionsInput struct {
	Session entity.Session
	Filter  entity.TransactionFilter
}

// ListTransactionsOutput represents the filtered ledger.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Report       *valueobject.LoadReport
}

// ListTransactionsUseCase handles listing the financial ledger.
type ListTransactionsUseCase struct {
	ledger adapter.TransactionLedger
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(ledger adapter.TransactionLedger) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{ledger: ledger}
}

// Execute returns the ledger rows that pass the filter, in ledger order.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	transactions, report, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	filtered := make([]*entity.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if input.Filter.Matches(tx) {
			filtered = append(filtered, tx)
		}
	}

	return &ListTransactionsOutput{Transactions: filtered, Report: report}, nil
}
