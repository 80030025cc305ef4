// Package pickup contains pickup order use cases.
package pickup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
)

// CreatePickupInput represents a pickup request.
type CreatePickupInput struct {
	Session     entity.Session
	PickupDate  time.Time
	WindowStart string
	WindowEnd   string
	Sender      entity.PickupParty
	Receiver    entity.PickupParty
	GoodsType   entity.GoodsType
	Volumes     int
	WeightKg    decimal.Decimal
	GoodsValue  decimal.Decimal
	Notes       string
	Urgent      bool
}

// CreatePickupUseCase schedules a new pickup order.
type CreatePickupUseCase struct {
	pickups  adapter.PickupRepository
	notifier adapter.PickupNotifier
	now      func() time.Time
}

// NewCreatePickupUseCase creates a new CreatePickupUseCase instance.
// notifier may be nil.
func NewCreatePickupUseCase(pickups adapter.PickupRepository, notifier adapter.PickupNotifier) *CreatePickupUseCase {
	return &CreatePickupUseCase{pickups: pickups, notifier: notifier, now: time.Now}
}

// WithClock replaces the clock used to stamp orders.
func (uc *CreatePickupUseCase) WithClock(now func() time.Time) *CreatePickupUseCase {
	uc.now = now
	return uc
}

// Execute validates the request, assigns the next number and saves the order as Agendada.
// A failed notification is logged and never fails the creation.
func (uc *CreatePickupUseCase) Execute(ctx context.Context, input CreatePickupInput) (*entity.PickupOrder, error) {
	if !input.Sender.IsComplete() || !input.Receiver.IsComplete() {
		return nil, domainerror.NewOperationsError(
			domainerror.ErrCodePickupMissingFields,
			"sender and receiver name, address, city and phone are required",
			domainerror.ErrPickupMissingFields,
		)
	}

	goodsType := input.GoodsType
	if goodsType == "" {
		goodsType = entity.GoodsTypeOther
	}
	if !goodsType.IsValid() {
		return nil, domainerror.NewOperationsError(
			domainerror.ErrCodeInvalidCargoType,
			"invalid goods type: "+string(goodsType),
			domainerror.ErrInvalidCargoType,
		)
	}

	orders, _, err := uc.pickups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pickups: %w", err)
	}

	volumes := input.Volumes
	if volumes < 1 {
		volumes = 1
	}

	order := &entity.PickupOrder{
		Number:      entity.NextPickupNumber(orders),
		CreatedAt:   uc.now(),
		PickupDate:  input.PickupDate,
		WindowStart: strings.TrimSpace(input.WindowStart),
		WindowEnd:   strings.TrimSpace(input.WindowEnd),
		Sender:      trimParty(input.Sender),
		Receiver:    trimParty(input.Receiver),
		GoodsType:   goodsType,
		Volumes:     volumes,
		WeightKg:    input.WeightKg,
		GoodsValue:  input.GoodsValue,
		Notes:       strings.TrimSpace(input.Notes),
		Urgent:      input.Urgent,
		Status:      entity.PickupStatusScheduled,
	}

	if err := uc.pickups.SaveAll(ctx, append(orders, order)); err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerWriteFailed,
			"failed to save pickup order",
			fmt.Errorf("%w: %w", domainerror.ErrLedgerWriteFailed, err),
		)
	}

	slog.Info("Pickup order scheduled",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"number", order.Number,
		"urgent", order.Urgent,
	)

	if uc.notifier != nil {
		if err := uc.notifier.NotifyPickupScheduled(ctx, order); err != nil {
			slog.Warn("Pickup notification failed",
				"request_id", input.Session.RequestID,
				"number", order.Number,
				"error", err,
			)
		}
	}

	return order, nil
}

func trimParty(p entity.PickupParty) entity.PickupParty {
	return entity.PickupParty{
		Name:    strings.TrimSpace(p.Name),
		Address: strings.TrimSpace(p.Address),
		City:    strings.TrimSpace(p.City),
		Phone:   strings.TrimSpace(p.Phone),
		Contact: strings.TrimSpace(p.Contact),
	}
}
