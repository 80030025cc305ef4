// Package shipment contains shipment ledger views.
package shipment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// SearchShipmentsInput represents a free-text shipment search.
type SearchShipmentsInput struct {
	Session entity.Session
	Query   string
}

// SearchShipmentsOutput represents the matching shipment rows.
type SearchShipmentsOutput struct {
	Shipments []*entity.Shipment
	Report    *valueobject.LoadReport
}

// SearchShipmentsUseCase searches the shipment ledger.
type SearchShipmentsUseCase struct {
	shipments adapter.ShipmentLedger
}

// NewSearchShipmentsUseCase creates a new SearchShipmentsUseCase instance.
func NewSearchShipmentsUseCase(shipments adapter.ShipmentLedger) *SearchShipmentsUseCase {
	return &SearchShipmentsUseCase{shipments: shipments}
}

// Execute returns every shipment whose waybill number contains the query (case-sensitive)
// or whose sender, receiver, payer or receiver city contains it (case-insensitive).
// An empty query returns the whole ledger.
func (uc *SearchShipmentsUseCase) Execute(ctx context.Context, input SearchShipmentsInput) (*SearchShipmentsOutput, error) {
	shipments, report, err := uc.shipments.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment ledger: %w", err)
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return &SearchShipmentsOutput{Shipments: shipments, Report: report}, nil
	}

	fold := cases.Fold()
	folded := fold.String(query)
	matches := make([]*entity.Shipment, 0)
	for _, s := range shipments {
		if strings.Contains(s.WaybillNumber, query) ||
			strings.Contains(fold.String(s.SenderName), folded) ||
			strings.Contains(fold.String(s.ReceiverName), folded) ||
			strings.Contains(fold.String(s.PayerName), folded) ||
			strings.Contains(fold.String(s.ReceiverCity), folded) {
			matches = append(matches, s)
		}
	}

	slog.Info("Shipments searched",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"query", query,
		"matches", len(matches),
	)

	return &SearchShipmentsOutput{Shipments: matches, Report: report}, nil
}
