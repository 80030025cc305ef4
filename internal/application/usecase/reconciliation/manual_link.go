package reconciliation

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

// ManualLinkInput represents an operator pairing one transaction with a document reference.
type ManualLinkInput struct {
	Session    entity.Session
	ExternalID string
	Reference  string
}

// ManualLinkUseCase writes a document reference onto exactly one unreconciled transaction.
type ManualLinkUseCase struct {
	ledger adapter.TransactionLedger
}

// NewManualLinkUseCase creates a new ManualLinkUseCase instance.
func NewManualLinkUseCase(ledger adapter.TransactionLedger) *ManualLinkUseCase {
	return &ManualLinkUseCase{ledger: ledger}
}

// Execute performs the manual linking operation and persists the ledger.
func (uc *ManualLinkUseCase) Execute(ctx context.Context, input ManualLinkInput) (*entity.Transaction, error) {
	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyReference,
			"reference is required",
			domainerror.ErrEmptyReference,
		)
	}

	externalID := strings.TrimSpace(input.ExternalID)
	if externalID == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingExternalID,
			"external transaction id is required",
			domainerror.ErrMissingExternalID,
		)
	}

	transactions, _, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	var target *entity.Transaction
	for _, tx := range transactions {
		if tx.ExternalID == externalID {
			target = tx
			break
		}
	}
	if target == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	if target.IsReconciled() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeAlreadyReconciled,
			"transaction is already reconciled with "+target.ReconciledReference,
			domainerror.ErrTransactionAlreadyReconciled,
		)
	}

	target.ReconciledReference = reference

	if err := uc.ledger.Save(ctx, transactions); err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerWriteFailed,
			"failed to save ledger",
			errors.Join(domainerror.ErrLedgerWriteFailed, err),
		)
	}

	slog.Info("Transaction reconciled manually",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"external_id", externalID,
		"reference", reference,
	)

	return target, nil
}
