package pickup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// Period selects how far back the pickup date may be.
type Period string

const (
	PeriodLast7Days  Period = "7d"
	PeriodLast30Days Period = "30d"
	PeriodAll        Period = "all"
)

// Days returns the look-back window, or zero for PeriodAll and unknown values.
func (p Period) Days() int {
	switch p {
	case PeriodLast7Days:
		return 7
	case PeriodLast30Days:
		return 30
	}
	return 0
}

// ListPickupsInput filters the pickup history. Empty fields do not filter.
type ListPickupsInput struct {
	Session    entity.Session
	Status     entity.PickupStatus
	OriginCity string
	Period     Period
}

// ListPickupsOutput represents the filtered orders and their figures.
type ListPickupsOutput struct {
	Orders        []*entity.PickupOrder
	CountByStatus map[entity.PickupStatus]int
	TotalWeightKg decimal.Decimal
	Report        *valueobject.LoadReport
}

// ListPickupsUseCase lists pickup orders.
type ListPickupsUseCase struct {
	pickups adapter.PickupRepository
	now     func() time.Time
}

// NewListPickupsUseCase creates a new ListPickupsUseCase instance.
func NewListPickupsUseCase(pickups adapter.PickupRepository) *ListPickupsUseCase {
	return &ListPickupsUseCase{pickups: pickups, now: time.Now}
}

// WithClock replaces the clock the period filter counts back from.
func (uc *ListPickupsUseCase) WithClock(now func() time.Time) *ListPickupsUseCase {
	uc.now = now
	return uc
}

// Execute applies the status, origin city and period filters.
func (uc *ListPickupsUseCase) Execute(ctx context.Context, input ListPickupsInput) (*ListPickupsOutput, error) {
	orders, report, err := uc.pickups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pickups: %w", err)
	}

	var since *time.Time
	if days := input.Period.Days(); days > 0 {
		now := uc.now()
		limit := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -days)
		since = &limit
	}
	city := strings.TrimSpace(input.OriginCity)

	out := &ListPickupsOutput{
		Orders:        make([]*entity.PickupOrder, 0),
		CountByStatus: make(map[entity.PickupStatus]int),
		TotalWeightKg: decimal.Zero,
		Report:        report,
	}
	for _, o := range orders {
		if input.Status != "" && o.Status != input.Status {
			continue
		}
		if city != "" && o.Sender.City != city {
			continue
		}
		if since != nil && o.PickupDate.Before(*since) {
			continue
		}
		out.Orders = append(out.Orders, o)
		out.CountByStatus[o.Status]++
		out.TotalWeightKg = out.TotalWeightKg.Add(o.WeightKg)
	}

	return out, nil
}
