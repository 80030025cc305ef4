package finance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
)

// UpdateClassificationInput represents a manual classification of one transaction.
// Nil fields keep their current value.
type UpdateClassificationInput struct {
	Session    entity.Session
	ExternalID string
	Category   *string
	CostCenter *string
	Department *string
}

// UpdateClassificationUseCase handles manual triage of a transaction.
type UpdateClassificationUseCase struct {
	ledger adapter.TransactionLedger
}

// NewUpdateClassificationUseCase creates a new UpdateClassificationUseCase instance.
func NewUpdateClassificationUseCase(ledger adapter.TransactionLedger) *UpdateClassificationUseCase {
	return &UpdateClassificationUseCase{ledger: ledger}
}

// Execute applies the classification and persists the ledger.
func (uc *UpdateClassificationUseCase) Execute(ctx context.Context, input UpdateClassificationInput) (*entity.Transaction, error) {
	if input.Category == nil && input.CostCenter == nil && input.Department == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyClassification,
			"at least one of category, cost_center or department is required",
			domainerror.ErrEmptyClassification,
		)
	}

	transactions, _, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	target := findTransaction(transactions, input.ExternalID)
	if target == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	category, costCenter, department := target.Category, target.CostCenter, target.Department
	if input.Category != nil {
		category = strings.TrimSpace(*input.Category)
	}
	if input.CostCenter != nil {
		costCenter = strings.TrimSpace(*input.CostCenter)
	}
	if input.Department != nil {
		department = strings.TrimSpace(*input.Department)
	}
	target.ApplyClassification(category, costCenter, department)

	if err := uc.ledger.Save(ctx, transactions); err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerWriteFailed,
			"failed to save ledger",
			errors.Join(domainerror.ErrLedgerWriteFailed, err),
		)
	}

	slog.Info("Transaction classified",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"external_id", input.ExternalID,
		"category", category,
	)

	return target, nil
}

// findTransaction returns the first ledger row with the given id.
func findTransaction(transactions []*entity.Transaction, externalID string) *entity.Transaction {
	id := strings.TrimSpace(externalID)
	if id == "" {
		return nil
	}
	for _, tx := range transactions {
		if tx.ExternalID == id {
			return tx
		}
	}
	return nil
}
