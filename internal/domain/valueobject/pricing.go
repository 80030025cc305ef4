package valueobject

import "github.com/shopspring/decimal"

// Cargo types priced by the default table.
const (
	CargoTypeNormal       = "Normal"
	CargoTypeFragile      = "Frágil"
	CargoTypeHazardous    = "Perigosa"
	CargoTypeRefrigerated = "Refrigerada"
)

// PricingTable holds the per-kilometre rates and the weight and minimum components of a quote.
type PricingTable struct {
	RatesPerKm       map[string]decimal.Decimal
	DefaultCargoType string
	WeightFactor     decimal.Decimal // R$ per kg
	Minimum          decimal.Decimal
}

// DefaultPricingTable returns the standard freight pricing.
func DefaultPricingTable() PricingTable {
	return PricingTable{
		RatesPerKm: map[string]decimal.Decimal{
			CargoTypeNormal:       decimal.RequireFromString("2.50"),
			CargoTypeFragile:      decimal.RequireFromString("3.00"),
			CargoTypeHazardous:    decimal.RequireFromString("3.50"),
			CargoTypeRefrigerated: decimal.RequireFromString("4.00"),
		},
		DefaultCargoType: CargoTypeNormal,
		WeightFactor:     decimal.RequireFromString("0.15"),
		Minimum:          decimal.RequireFromString("150.00"),
	}
}

// RateFor returns the rate of cargoType, falling back to the default cargo type.
func (p PricingTable) RateFor(cargoType string) decimal.Decimal {
	if rate, ok := p.RatesPerKm[cargoType]; ok {
		return rate
	}
	return p.RatesPerKm[p.DefaultCargoType]
}

// Calculate returns max(minimum, distance * rate + weight * weight factor), rounded to cents.
func (p PricingTable) Calculate(distanceKm, weightKg decimal.Decimal, cargoType string) decimal.Decimal {
	value := distanceKm.Mul(p.RateFor(cargoType)).Add(weightKg.Mul(p.WeightFactor))
	if value.LessThan(p.Minimum) {
		value = p.Minimum
	}
	return value.Round(2)
}
