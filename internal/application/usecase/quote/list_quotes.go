package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ListQuotesInput filters the quote history. Empty fields do not filter.
type ListQuotesInput struct {
	Session entity.Session
	Status  string
	Client  string
	Date    *time.Time
}

// ListQuotesOutput represents the filtered history and its figures.
type ListQuotesOutput struct {
	Quotes       []*entity.FreightQuote
	Count        int
	AverageValue decimal.Decimal
	TotalValue   decimal.Decimal
	PendingCount int
	Report       *valueobject.LoadReport
}

// ListQuotesUseCase lists saved quotes.
type ListQuotesUseCase struct {
	quotes adapter.QuoteRepository
}

// NewListQuotesUseCase creates a new ListQuotesUseCase instance.
func NewListQuotesUseCase(quotes adapter.QuoteRepository) *ListQuotesUseCase {
	return &ListQuotesUseCase{quotes: quotes}
}

// Execute applies the status, client and creation-day filters. The client filter is a
// case-insensitive substring match.
func (uc *ListQuotesUseCase) Execute(ctx context.Context, input ListQuotesInput) (*ListQuotesOutput, error) {
	quotes, report, err := uc.quotes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}

	status := strings.TrimSpace(input.Status)
	fold := cases.Fold()
	client := fold.String(strings.TrimSpace(input.Client))

	out := &ListQuotesOutput{
		Quotes:       make([]*entity.FreightQuote, 0),
		AverageValue: decimal.Zero,
		TotalValue:   decimal.Zero,
		Report:       report,
	}
	for _, q := range quotes {
		if status != "" && string(q.Status) != status {
			continue
		}
		if client != "" && !strings.Contains(fold.String(q.Client), client) {
			continue
		}
		if input.Date != nil && !sameDay(q.CreatedAt, *input.Date) {
			continue
		}

		out.Quotes = append(out.Quotes, q)
		out.TotalValue = out.TotalValue.Add(q.Value)
		if q.Status == entity.QuoteStatusPending {
			out.PendingCount++
		}
	}

	out.Count = len(out.Quotes)
	if out.Count > 0 {
		out.AverageValue = out.TotalValue.Div(decimal.NewFromInt(int64(out.Count))).Round(2)
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
