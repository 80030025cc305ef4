package reconciliation

import (
	"context"
	"fmt"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ListUnreconciledOutput represents the transactions available for manual pairing.
type ListUnreconciledOutput struct {
	Transactions []*entity.Transaction
	Report       *valueobject.LoadReport
}

// ListUnreconciledUseCase lists ledger transactions without a document reference.
type ListUnreconciledUseCase struct {
	ledger adapter.TransactionLedger
}

// NewListUnreconciledUseCase creates a new ListUnreconciledUseCase instance.
func NewListUnreconciledUseCase(ledger adapter.TransactionLedger) *ListUnreconciledUseCase {
	return &ListUnreconciledUseCase{ledger: ledger}
}

// Execute returns the unreconciled transactions in ledger order.
func (uc *ListUnreconciledUseCase) Execute(ctx context.Context) (*ListUnreconciledOutput, error) {
	transactions, report, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return &ListUnreconciledOutput{Transactions: unreconciled(transactions), Report: report}, nil
}

func unreconciled(transactions []*entity.Transaction) []*entity.Transaction {
	out := make([]*entity.Transaction, 0)
	for _, tx := range transactions {
		if !tx.IsReconciled() {
			out = append(out, tx)
		}
	}
	return out
}
