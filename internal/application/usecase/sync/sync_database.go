// Package sync mirrors the file ledgers into the SQL database.
package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// SyncDatabaseOutput reports how many rows each table received.
type SyncDatabaseOutput struct {
	Shipments    int
	Transactions int
	Report       *valueobject.LoadReport
}

// SyncDatabaseUseCase copies the shipment and financial ledgers into the SQL mirror.
type SyncDatabaseUseCase struct {
	shipments    adapter.ShipmentLedger
	transactions adapter.TransactionLedger
	mirror       adapter.SQLMirror
	invalidator  adapter.LedgerInvalidator
}

// NewSyncDatabaseUseCase creates a new SyncDatabaseUseCase instance.
// mirror is nil when no database is configured; invalidator may be nil.
func NewSyncDatabaseUseCase(
	shipments adapter.ShipmentLedger,
	transactions adapter.TransactionLedger,
	mirror adapter.SQLMirror,
	invalidator adapter.LedgerInvalidator,
) *SyncDatabaseUseCase {
	return &SyncDatabaseUseCase{
		shipments:    shipments,
		transactions: transactions,
		mirror:       mirror,
		invalidator:  invalidator,
	}
}

// Execute mirrors both ledgers. An unavailable database is reported as a warning with
// zero counts; only ledger read failures are returned as errors.
func (uc *SyncDatabaseUseCase) Execute(ctx context.Context, session entity.Session) (*SyncDatabaseOutput, error) {
	report := valueobject.NewLoadReport()
	out := &SyncDatabaseOutput{Report: report}

	if uc.mirror == nil {
		report.SourceUnavailable("database is not configured")
		return out, nil
	}

	shipments, shipmentReport, err := uc.shipments.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment ledger: %w", err)
	}
	report.Merge(shipmentReport)

	transactions, ledgerReport, err := uc.transactions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load financial ledger: %w", err)
	}
	report.Merge(ledgerReport)

	if out.Shipments, err = uc.mirror.MirrorShipments(ctx, shipments); err != nil {
		slog.Error("Shipment mirror failed", "request_id", session.RequestID, "error", err)
		report.SourceUnavailable("database unavailable while mirroring shipments: %v", err)
		out.Shipments = 0
		return out, nil
	}

	if out.Transactions, err = uc.mirror.MirrorTransactions(ctx, transactions); err != nil {
		slog.Error("Transaction mirror failed", "request_id", session.RequestID, "error", err)
		report.SourceUnavailable("database unavailable while mirroring transactions: %v", err)
		out.Transactions = 0
	}

	if uc.invalidator != nil {
		if err := uc.invalidator.Invalidate(ctx); err != nil {
			slog.Warn("Shipment cache invalidation failed", "error", err)
		}
	}

	slog.Info("Database sync completed",
		"operator", session.Operator,
		"request_id", session.RequestID,
		"shipments", out.Shipments,
		"transactions", out.Transactions,
	)

	return out, nil
}
