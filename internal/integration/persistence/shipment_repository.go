package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
	"github.com/freight-backoffice/backend/internal/integration/persistence/model"
)

// shipmentRepository reads the shipment ledger from the SQL mirror.
type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository creates a new shipment repository instance.
func NewShipmentRepository(db *gorm.DB) adapter.ShipmentLedger {
	return &shipmentRepository{db: db}
}

// Load returns every mirrored shipment ordered as it was inserted.
func (r *shipmentRepository) Load(ctx context.Context) ([]*entity.Shipment, *valueobject.LoadReport, error) {
	var rows []model.ShipmentModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, nil, domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerReadFailed,
			"failed to read shipments from database",
			fmt.Errorf("%w: %w", domainerror.ErrSourceUnavailable, err),
		)
	}

	report := valueobject.NewLoadReport()
	report.RowsRead = len(rows)
	shipments := make([]*entity.Shipment, 0, len(rows))
	for i := range rows {
		shipments = append(shipments, rows[i].ToEntity())
	}
	return shipments, report, nil
}

// fallbackShipmentLedger reads from a primary ledger and falls back to a secondary one
// when the primary fails.
type fallbackShipmentLedger struct {
	primary  adapter.ShipmentLedger
	fallback adapter.ShipmentLedger
}

// NewFallbackShipmentLedger creates a ledger that tries primary first.
func NewFallbackShipmentLedger(primary, fallback adapter.ShipmentLedger) adapter.ShipmentLedger {
	return &fallbackShipmentLedger{primary: primary, fallback: fallback}
}

// Load returns the primary's rows, or the fallback's plus a SourceUnavailable warning.
func (l *fallbackShipmentLedger) Load(ctx context.Context) ([]*entity.Shipment, *valueobject.LoadReport, error) {
	shipments, report, err := l.primary.Load(ctx)
	if err == nil {
		return shipments, report, nil
	}

	slog.Warn("Primary shipment source failed, using fallback", "error", err)
	shipments, report, fbErr := l.fallback.Load(ctx)
	if fbErr != nil {
		return nil, nil, fbErr
	}
	report.SourceUnavailable("database unavailable, shipments read from file: %v", err)
	return shipments, report, nil
}
