package finance

import (
	"context"
	"fmt"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ListPendingClassificationOutput represents transactions still carrying the sentinel.
type ListPendingClassificationOutput struct {
	Transactions []*entity.Transaction
	Report       *valueobject.LoadReport
}

// ListPendingClassificationUseCase lists transactions awaiting manual triage.
type ListPendingClassificationUseCase struct {
	ledger adapter.TransactionLedger
}

// NewListPendingClassificationUseCase creates a new ListPendingClassificationUseCase instance.
func NewListPendingClassificationUseCase(ledger adapter.TransactionLedger) *ListPendingClassificationUseCase {
	return &ListPendingClassificationUseCase{ledger: ledger}
}

// Execute returns rows whose cost center or department needs definition.
func (uc *ListPendingClassificationUseCase) Execute(ctx context.Context) (*ListPendingClassificationOutput, error) {
	transactions, report, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	pending := make([]*entity.Transaction, 0)
	for _, tx := range transactions {
		if valueobject.NeedsDefinition(tx.CostCenter, tx.Department) {
			pending = append(pending, tx)
		}
	}

	return &ListPendingClassificationOutput{Transactions: pending, Report: report}, nil
}
