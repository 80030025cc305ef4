package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the commercial state of a saved quote.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "Pendente"
	QuoteStatusApproved QuoteStatus = "Aprovada"
	QuoteStatusRejected QuoteStatus = "Recusada"
)

// FreightQuote represents a priced freight request.
type FreightQuote struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	Client       string
	Origin       string
	Destination  string
	DistanceKm   decimal.Decimal
	WeightKg     decimal.Decimal
	CargoType    string
	DeadlineDays int
	Value        decimal.Decimal
	Status       QuoteStatus
	Notes        string
}

// NewFreightQuote creates a pending quote stamped with the given time.
func NewFreightQuote(now time.Time, client, origin, destination string, distanceKm, weightKg decimal.Decimal, cargoType string, deadlineDays int, value decimal.Decimal, notes string) *FreightQuote {
	return &FreightQuote{
		ID:           uuid.New(),
		CreatedAt:    now,
		Client:       client,
		Origin:       origin,
		Destination:  destination,
		DistanceKm:   distanceKm,
		WeightKg:     weightKg,
		CargoType:    cargoType,
		DeadlineDays: deadlineDays,
		Value:        value,
		Status:       QuoteStatusPending,
		Notes:        notes,
	}
}
