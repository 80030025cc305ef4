// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/integration/persistence/model"
)

const mirrorBatchSize = 500

// sqlMirror implements the adapter.SQLMirror interface.
type sqlMirror struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSQLMirror creates a new SQL mirror instance.
func NewSQLMirror(db *gorm.DB) adapter.SQLMirror {
	return &sqlMirror{db: db, now: time.Now}
}

// MirrorShipments replaces the shipments table with the given rows in one transaction.
func (m *sqlMirror) MirrorShipments(ctx context.Context, shipments []*entity.Shipment) (int, error) {
	syncedAt := m.now().UTC()
	rows := make([]*model.ShipmentModel, 0, len(shipments))
	for _, s := range shipments {
		rows = append(rows, model.ShipmentFromEntity(s, syncedAt))
	}

	if err := m.replace(ctx, &model.ShipmentModel{}, rows, len(rows)); err != nil {
		return 0, fmt.Errorf("failed to mirror shipments: %w", err)
	}
	slog.Info("Shipments mirrored", "rows", len(rows))
	return len(rows), nil
}

// MirrorTransactions replaces the ledger_transactions table with the given rows in one transaction.
// Malformed rows have no typed date or amount and are not mirrored.
func (m *sqlMirror) MirrorTransactions(ctx context.Context, transactions []*entity.Transaction) (int, error) {
	syncedAt := m.now().UTC()
	rows := make([]*model.TransactionModel, 0, len(transactions))
	skipped := 0
	for _, t := range transactions {
		if t.IsMalformed() {
			skipped++
			continue
		}
		rows = append(rows, model.TransactionFromEntity(t, syncedAt))
	}
	if skipped > 0 {
		slog.Warn("Malformed transactions left out of the mirror", "rows", skipped)
	}

	if err := m.replace(ctx, &model.TransactionModel{}, rows, len(rows)); err != nil {
		return 0, fmt.Errorf("failed to mirror transactions: %w", err)
	}
	slog.Info("Transactions mirrored", "rows", len(rows))
	return len(rows), nil
}

func (m *sqlMirror) replace(ctx context.Context, table any, rows any, count int) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, mirrorBatchSize).Error
	})
}
