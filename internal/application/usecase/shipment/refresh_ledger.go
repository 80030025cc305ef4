package shipment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
)

// RefreshLedgerOutput reports whether a cached ledger was dropped.
type RefreshLedgerOutput struct {
	Invalidated bool
}

// RefreshLedgerUseCase drops the cached copy of the shipment ledger so the next read
// goes back to the source.
type RefreshLedgerUseCase struct {
	invalidator adapter.LedgerInvalidator
}

// NewRefreshLedgerUseCase creates a new RefreshLedgerUseCase instance.
// invalidator is nil when no cache is configured.
func NewRefreshLedgerUseCase(invalidator adapter.LedgerInvalidator) *RefreshLedgerUseCase {
	return &RefreshLedgerUseCase{invalidator: invalidator}
}

// Execute invalidates the cache when there is one.
func (uc *RefreshLedgerUseCase) Execute(ctx context.Context, session entity.Session) (*RefreshLedgerOutput, error) {
	if uc.invalidator == nil {
		return &RefreshLedgerOutput{}, nil
	}
	if err := uc.invalidator.Invalidate(ctx); err != nil {
		return nil, fmt.Errorf("failed to invalidate shipment cache: %w", err)
	}

	slog.Info("Shipment ledger cache invalidated",
		"operator", session.Operator,
		"request_id", session.RequestID,
	)
	return &RefreshLedgerOutput{Invalidated: true}, nil
}
