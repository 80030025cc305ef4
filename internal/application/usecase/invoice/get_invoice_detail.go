package invoice

import (
	"context"
	"fmt"
	"strings"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// GetInvoiceDetailInput selects one invoice.
type GetInvoiceDetailInput struct {
	Session       entity.Session
	InvoiceNumber string
}

// GetInvoiceDetailOutput is the aggregate plus the shipment rows it was built from.
type GetInvoiceDetailOutput struct {
	Invoice   *entity.Invoice
	Shipments []*entity.Shipment
	Report    *valueobject.LoadReport
}

// GetInvoiceDetailUseCase drills down into one invoice.
type GetInvoiceDetailUseCase struct {
	shipments adapter.ShipmentLedger
}

// NewGetInvoiceDetailUseCase creates a new GetInvoiceDetailUseCase instance.
func NewGetInvoiceDetailUseCase(shipments adapter.ShipmentLedger) *GetInvoiceDetailUseCase {
	return &GetInvoiceDetailUseCase{shipments: shipments}
}

// Execute returns every shipment row that belongs to the invoice.
func (uc *GetInvoiceDetailUseCase) Execute(ctx context.Context, input GetInvoiceDetailInput) (*GetInvoiceDetailOutput, error) {
	shipments, report, err := uc.shipments.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment ledger: %w", err)
	}

	number := strings.TrimSpace(input.InvoiceNumber)
	rows := make([]*entity.Shipment, 0)
	for _, s := range shipments {
		if strings.TrimSpace(s.InvoiceNumber) == number {
			rows = append(rows, s)
		}
	}
	if len(rows) == 0 {
		return nil, domainerror.NewReconciliationError(
			domainerror.ErrCodeInvoiceNotFound,
			"invoice not found",
			domainerror.ErrInvoiceNotFound,
		)
	}

	return &GetInvoiceDetailOutput{
		Invoice:   Aggregate(rows)[0],
		Shipments: rows,
		Report:    report,
	}, nil
}
