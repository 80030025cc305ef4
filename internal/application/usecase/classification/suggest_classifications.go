package classification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// MaxSuggestionBatch caps how many pending transactions are sent to the advisor at once.
const MaxSuggestionBatch = 50

// SuggestClassificationsInput represents the input for requesting suggestions.
type SuggestClassificationsInput struct {
	Session entity.Session
	Limit   int
}

// SuggestClassificationsOutput represents the advisor's proposals.
type SuggestClassificationsOutput struct {
	Suggestions []adapter.AdvisorSuggestion
	Pending     int
	Report      *valueobject.LoadReport
}

// SuggestClassificationsUseCase asks the advisor to classify transactions still
// carrying the "needs definition" sentinel. Suggestions are returned, never applied.
type SuggestClassificationsUseCase struct {
	ledger     adapter.TransactionLedger
	advisor    adapter.ClassificationAdvisor
	classifier *Classifier
}

// NewSuggestClassificationsUseCase creates a new SuggestClassificationsUseCase instance.
// advisor may be nil when no advisor is configured.
func NewSuggestClassificationsUseCase(
	ledger adapter.TransactionLedger,
	advisor adapter.ClassificationAdvisor,
	classifier *Classifier,
) *SuggestClassificationsUseCase {
	return &SuggestClassificationsUseCase{
		ledger:     ledger,
		advisor:    advisor,
		classifier: classifier,
	}
}

// Execute requests suggestions for the pending transactions.
func (uc *SuggestClassificationsUseCase) Execute(ctx context.Context, input SuggestClassificationsInput) (*SuggestClassificationsOutput, error) {
	if uc.advisor == nil || !uc.advisor.IsAvailable() {
		return nil, domainerror.NewClassificationError(
			domainerror.ErrCodeAdvisorUnavailable,
			"classification advisor is not configured",
			domainerror.ErrAdvisorUnavailable,
		)
	}

	transactions, report, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	limit := input.Limit
	if limit <= 0 || limit > MaxSuggestionBatch {
		limit = MaxSuggestionBatch
	}

	pending := make([]adapter.AdvisorTransaction, 0, limit)
	pendingCount := 0
	for _, tx := range transactions {
		if !valueobject.NeedsDefinition(tx.CostCenter, tx.Department) {
			continue
		}
		pendingCount++
		if len(pending) < limit {
			pending = append(pending, adapter.AdvisorTransaction{
				ExternalID:  tx.ExternalID,
				Description: tx.Description,
				Amount:      tx.Amount.StringFixed(2),
				Date:        tx.Date.Format("2006-01-02"),
			})
		}
	}

	output := &SuggestClassificationsOutput{
		Suggestions: []adapter.AdvisorSuggestion{},
		Pending:     pendingCount,
		Report:      report,
	}
	if len(pending) == 0 {
		return output, nil
	}

	rules := uc.classifier.Rules()
	suggestions, err := uc.advisor.Suggest(ctx, adapter.AdvisorRequest{
		Transactions: pending,
		Categories:   rules.Categories(),
		CostCenters:  rules.CostCenters(),
		Departments:  rules.Departments(),
	})
	if err != nil {
		return nil, domainerror.NewClassificationError(
			domainerror.ErrCodeAdvisorRequestFailed,
			"classification advisor request failed",
			err,
		)
	}
	output.Suggestions = suggestions

	slog.Info("Classification suggestions generated",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"pending", pendingCount,
		"suggestions", len(suggestions),
	)

	return output, nil
}
