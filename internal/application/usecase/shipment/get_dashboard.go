package shipment

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// MonthlyFreight is the freight issued in one YYYY-MM month.
type MonthlyFreight struct {
	Month   string
	Freight decimal.Decimal
}

// YearlyAverage is the mean freight per shipment issued in one year.
type YearlyAverage struct {
	Year    int
	Average decimal.Decimal
	Count   int
}

// CityFreight is the freight delivered to one destination city.
type CityFreight struct {
	City    string
	Freight decimal.Decimal
}

// GetDashboardOutput represents the shipment dashboard.
type GetDashboardOutput struct {
	TotalFreight  decimal.Decimal
	TotalVolumes  int
	ShipmentCount int
	ByMonth       []MonthlyFreight
	AverageByYear []YearlyAverage
	ByDestination []CityFreight
	Report        *valueobject.LoadReport
}

// GetDashboardUseCase computes the shipment dashboard figures.
type GetDashboardUseCase struct {
	shipments adapter.ShipmentLedger
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(shipments adapter.ShipmentLedger) *GetDashboardUseCase {
	return &GetDashboardUseCase{shipments: shipments}
}

// Execute aggregates the whole shipment ledger.
func (uc *GetDashboardUseCase) Execute(ctx context.Context) (*GetDashboardOutput, error) {
	shipments, report, err := uc.shipments.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment ledger: %w", err)
	}

	out := BuildDashboard(shipments)
	out.Report = report
	return out, nil
}

// BuildDashboard computes totals, freight per month (ascending), mean freight per year
// (ascending) and freight per destination city (descending).
func BuildDashboard(shipments []*entity.Shipment) *GetDashboardOutput {
	out := &GetDashboardOutput{TotalFreight: decimal.Zero, ShipmentCount: len(shipments)}

	months := make(map[string]decimal.Decimal)
	yearSum := make(map[int]decimal.Decimal)
	yearCount := make(map[int]int)
	cities := make(map[string]decimal.Decimal)

	for _, s := range shipments {
		out.TotalFreight = out.TotalFreight.Add(s.FreightValue)
		out.TotalVolumes += s.VolumeCount

		month := s.IssueDate.Format("2006-01")
		months[month] = months[month].Add(s.FreightValue)

		year := s.IssueDate.Year()
		yearSum[year] = yearSum[year].Add(s.FreightValue)
		yearCount[year]++

		city := strings.TrimSpace(s.ReceiverCity)
		if city != "" {
			cities[city] = cities[city].Add(s.FreightValue)
		}
	}

	out.ByMonth = make([]MonthlyFreight, 0, len(months))
	for month, freight := range months {
		out.ByMonth = append(out.ByMonth, MonthlyFreight{Month: month, Freight: freight})
	}
	sort.Slice(out.ByMonth, func(i, j int) bool { return out.ByMonth[i].Month < out.ByMonth[j].Month })

	out.AverageByYear = make([]YearlyAverage, 0, len(yearSum))
	for year, sum := range yearSum {
		count := yearCount[year]
		out.AverageByYear = append(out.AverageByYear, YearlyAverage{
			Year:    year,
			Average: sum.Div(decimal.NewFromInt(int64(count))).Round(2),
			Count:   count,
		})
	}
	sort.Slice(out.AverageByYear, func(i, j int) bool { return out.AverageByYear[i].Year < out.AverageByYear[j].Year })

	out.ByDestination = make([]CityFreight, 0, len(cities))
	for city, freight := range cities {
		out.ByDestination = append(out.ByDestination, CityFreight{City: city, Freight: freight})
	}
	sort.SliceStable(out.ByDestination, func(i, j int) bool {
		if c := out.ByDestination[i].Freight.Cmp(out.ByDestination[j].Freight); c != 0 {
			return c > 0
		}
		return out.ByDestination[i].City < out.ByDestination[j].City
	})

	return out
}
