package classification

import (
	"context"

	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ListRulesOutput represents the rule table and the option lists derived from it.
type ListRulesOutput struct {
	Rules       valueobject.RuleTable
	Categories  []string
	CostCenters []string
	Departments []string
}

// ListRulesUseCase handles listing the classification rule table.
type ListRulesUseCase struct {
	classifier *Classifier
}

// NewListRulesUseCase creates a new ListRulesUseCase instance.
func NewListRulesUseCase(classifier *Classifier) *ListRulesUseCase {
	return &ListRulesUseCase{classifier: classifier}
}

// Execute returns the rules in evaluation order.
func (uc *ListRulesUseCase) Execute(_ context.Context) (*ListRulesOutput, error) {
	rules := uc.classifier.Rules()
	return &ListRulesOutput{
		Rules:       rules,
		Categories:  rules.Categories(),
		CostCenters: rules.CostCenters(),
		Departments: rules.Departments(),
	}, nil
}
