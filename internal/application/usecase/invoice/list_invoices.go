package invoice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ListInvoicesInput filters shipments by due date before grouping.
type ListInvoicesInput struct {
	Session entity.Session
	DueDate valueobject.DateRange
}

// ListInvoicesOutput represents the invoice table.
type ListInvoicesOutput struct {
	Invoices []*entity.Invoice
	Report   *valueobject.LoadReport
}

// ListInvoicesUseCase derives invoices from the shipment ledger.
type ListInvoicesUseCase struct {
	shipments adapter.ShipmentLedger
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(shipments adapter.ShipmentLedger) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{shipments: shipments}
}

// Execute groups the shipments whose due date falls inside the range.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, input ListInvoicesInput) (*ListInvoicesOutput, error) {
	if !input.DueDate.IsValid() {
		return nil, domainerror.NewReconciliationError(
			domainerror.ErrCodeInvalidDateRange,
			"due date range ends before it starts",
			domainerror.ErrInvalidDateRange,
		)
	}

	shipments, report, err := uc.shipments.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment ledger: %w", err)
	}

	invoices := Aggregate(filterByDueDate(shipments, input.DueDate))

	slog.Info("Invoices listed",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"shipments", len(shipments),
		"invoices", len(invoices),
	)

	return &ListInvoicesOutput{Invoices: invoices, Report: report}, nil
}

func filterByDueDate(shipments []*entity.Shipment, r valueobject.DateRange) []*entity.Shipment {
	out := make([]*entity.Shipment, 0, len(shipments))
	for _, s := range shipments {
		if r.Contains(s.DueDate) {
			out = append(out, s)
		}
	}
	return out
}
