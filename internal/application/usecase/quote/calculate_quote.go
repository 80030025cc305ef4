// Package quote contains freight quote use cases.
package quote

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
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// DefaultDeadlineDays is used when the request carries no deadline.
const DefaultDeadlineDays = 3

// CalculateQuoteInput represents a freight quote request.
type CalculateQuoteInput struct {
	Session      entity.Session
	Client       string
	Origin       string
	Destination  string
	DistanceKm   decimal.Decimal
	WeightKg     decimal.Decimal
	CargoType    string
	DeadlineDays int
	Notes        string
	Save         bool
}

// CalculateQuoteOutput represents the priced quote.
type CalculateQuoteOutput struct {
	Quote *entity.FreightQuote
	Saved bool
}

// CalculateQuoteUseCase prices a quote and optionally records it as pending.
type CalculateQuoteUseCase struct {
	pricing valueobject.PricingTable
	quotes  adapter.QuoteRepository
	now     func() time.Time
}

// NewCalculateQuoteUseCase creates a new CalculateQuoteUseCase instance.
func NewCalculateQuoteUseCase(pricing valueobject.PricingTable, quotes adapter.QuoteRepository) *CalculateQuoteUseCase {
	return &CalculateQuoteUseCase{pricing: pricing, quotes: quotes, now: time.Now}
}

// WithClock replaces the clock used to stamp quotes.
func (uc *CalculateQuoteUseCase) WithClock(now func() time.Time) *CalculateQuoteUseCase {
	uc.now = now
	return uc
}

// Execute validates the request, prices it and saves it when asked to.
func (uc *CalculateQuoteUseCase) Execute(ctx context.Context, input CalculateQuoteInput) (*CalculateQuoteOutput, error) {
	client := strings.TrimSpace(input.Client)
	origin := strings.TrimSpace(input.Origin)
	destination := strings.TrimSpace(input.Destination)

	if client == "" || origin == "" || destination == "" {
		return nil, domainerror.NewOperationsError(
			domainerror.ErrCodeQuoteMissingFields,
			"client, origin and destination are required",
			domainerror.ErrQuoteMissingFields,
		)
	}
	if input.DistanceKm.LessThan(decimal.NewFromInt(1)) {
		return nil, domainerror.NewOperationsError(
			domainerror.ErrCodeInvalidDistance,
			"distance must be at least 1 km",
			domainerror.ErrInvalidDistance,
		)
	}
	if !input.WeightKg.IsPositive() {
		return nil, domainerror.NewOperationsError(
			domainerror.ErrCodeInvalidWeight,
			"weight must be greater than zero",
			domainerror.ErrInvalidWeight,
		)
	}

	cargoType := strings.TrimSpace(input.CargoType)
	if _, ok := uc.pricing.RatesPerKm[cargoType]; !ok {
		cargoType = uc.pricing.DefaultCargoType
	}
	deadline := input.DeadlineDays
	if deadline < 1 {
		deadline = DefaultDeadlineDays
	}

	value := uc.pricing.Calculate(input.DistanceKm, input.WeightKg, cargoType)
	quote := entity.NewFreightQuote(
		uc.now(), client, origin, destination,
		input.DistanceKm, input.WeightKg, cargoType, deadline, value,
		strings.TrimSpace(input.Notes),
	)

	output := &CalculateQuoteOutput{Quote: quote}
	if !input.Save {
		return output, nil
	}

	existing, _, err := uc.quotes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}
	if err := uc.quotes.SaveAll(ctx, append(existing, quote)); err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerWriteFailed,
			"failed to save quote",
			fmt.Errorf("%w: %w", domainerror.ErrLedgerWriteFailed, err),
		)
	}
	output.Saved = true

	slog.Info("Freight quote saved",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"quote_id", quote.ID.String(),
		"client", client,
		"value", value.String(),
	)

	return output, nil
}
