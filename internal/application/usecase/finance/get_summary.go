package finance

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/application/usecase/statement"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// GetSummaryInput represents the input for the ledger summary.
type GetSummaryInput struct {
	Session entity.Session
	Filter  entity.TransactionFilter
}

// GetSummaryOutput represents inflow, outflow, balance and per-category totals.
type GetSummaryOutput struct {
	Totals       entity.TransactionTotals
	ByCategory   []CategoryTotal
	Count        int
	Unreconciled int
	Malformed    int
	Report       *valueobject.LoadReport
}

// GetSummaryUseCase computes the ledger summary.
type GetSummaryUseCase struct {
	ledger adapter.TransactionLedger
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(ledger adapter.TransactionLedger) *GetSummaryUseCase {
	return &GetSummaryUseCase{ledger: ledger}
}

// Execute computes the summary over the filtered ledger. Malformed rows are counted
// but left out of every total.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	transactions, report, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	filtered := make([]*entity.Transaction, 0, len(transactions))
	byCategory := make(map[string]decimal.Decimal)
	unreconciled, malformed := 0, 0
	for _, tx := range transactions {
		if !input.Filter.Matches(tx) {
			continue
		}
		if tx.IsMalformed() {
			malformed++
			continue
		}
		filtered = append(filtered, tx)
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		if !tx.IsReconciled() {
			unreconciled++
		}
	}

	categories := make([]CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		categories = append(categories, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Total.Equal(categories[j].Total) {
			return categories[i].Total.GreaterThan(categories[j].Total)
		}
		return categories[i].Category < categories[j].Category
	})

	return &GetSummaryOutput{
		Totals:       statement.Totals(filtered),
		ByCategory:   categories,
		Count:        len(filtered),
		Unreconciled: unreconciled,
		Malformed:    malformed,
		Report:       report,
	}, nil
}
