package pickup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
)

// UpdatePickupStatusInput represents a status change of one order.
// Empty driver and vehicle keep the current values.
type UpdatePickupStatusInput struct {
	Session entity.Session
	Number  int
	Status  entity.PickupStatus
	Driver  string
	Vehicle string
}

// UpdatePickupStatusUseCase moves a pickup order through its lifecycle.
type UpdatePickupStatusUseCase struct {
	pickups adapter.PickupRepository
}

// NewUpdatePickupStatusUseCase creates a new UpdatePickupStatusUseCase instance.
func NewUpdatePickupStatusUseCase(pickups adapter.PickupRepository) *UpdatePickupStatusUseCase {
	return &UpdatePickupStatusUseCase{pickups: pickups}
}

// Execute sets the status and assignment of the order and persists the table.
func (uc *UpdatePickupStatusUseCase) Execute(ctx context.Context, input UpdatePickupStatusInput) (*entity.PickupOrder, error) {
	if !input.Status.IsValid() {
		return nil, domainerror.NewOperationsError(
			domainerror.ErrCodeInvalidPickupStatus,
			"invalid pickup status: "+string(input.Status),
			domainerror.ErrInvalidPickupStatus,
		)
	}

	orders, _, err := uc.pickups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pickups: %w", err)
	}

	var target *entity.PickupOrder
	for _, o := range orders {
		if o.Number == input.Number {
			target = o
			break
		}
	}
	if target == nil {
		return nil, domainerror.NewOperationsError(
			domainerror.ErrCodePickupNotFound,
			fmt.Sprintf("pickup order %d not found", input.Number),
			domainerror.ErrPickupNotFound,
		)
	}

	previous := target.Status
	target.Status = input.Status
	if driver := strings.TrimSpace(input.Driver); driver != "" {
		target.Driver = driver
	}
	if vehicle := strings.TrimSpace(input.Vehicle); vehicle != "" {
		target.Vehicle = vehicle
	}

	if err := uc.pickups.SaveAll(ctx, orders); err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerWriteFailed,
			"failed to save pickup orders",
			fmt.Errorf("%w: %w", domainerror.ErrLedgerWriteFailed, err),
		)
	}

	slog.Info("Pickup status updated",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"number", target.Number,
		"from", string(previous),
		"to", string(target.Status),
	)

	return target, nil
}
