package adapter

import (
	"context"
)

// AdvisorTransaction is the part of a transaction shown to the advisor.
type AdvisorTransaction struct {
	ExternalID  string
	Description string
	Amount      string
	Date        string
}

// AdvisorRequest asks for classifications restricted to the known option lists.
type AdvisorRequest struct {
	Transactions []AdvisorTransaction
	Categories   []string
	CostCenters  []string
	Departments  []string
}

// AdvisorSuggestion is one proposed classification. It is never applied automatically.
type AdvisorSuggestion struct {
	ExternalID string
	Category   string
	CostCenter string
	Department string
	Confidence float64
	Reasoning  string
}

// ClassificationAdvisor proposes classifications for transactions no rule matched.
type ClassificationAdvisor interface {
	IsAvailable() bool
	Suggest(ctx context.Context, request AdvisorRequest) ([]AdvisorSuggestion, error)
}
