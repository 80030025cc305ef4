package dto

import (
	"github.com/freight-backoffice/backend/internal/application/usecase/classification"
)

// RuleResponse represents one keyword rule.
type RuleResponse struct {
	Keyword    string `json:"keyword"`
	Category   string `json:"category"`
	CostCenter string `json:"cost_center"`
	Department string `json:"department"`
}

// RulesResponse represents the rule table and the option lists derived from it.
type RulesResponse struct {
	Rules       []RuleResponse `json:"rules"`
	Categories  []string       `json:"categories"`
	CostCenters []string       `json:"cost_centers"`
	Departments []string       `json:"departments"`
}

// ToRulesResponse converts the list rules use case output.
func ToRulesResponse(output *classification.ListRulesOutput) RulesResponse {
	rules := make([]RuleResponse, len(output.Rules))
	for i, r := range output.Rules {
		rules[i] = RuleResponse{
			Keyword:    r.Keyword,
			Category:   r.Category,
			CostCenter: r.CostCenter,
			Department: r.Department,
		}
	}
	return RulesResponse{
		Rules:       rules,
		Categories:  output.Categories,
		CostCenters: output.CostCenters,
		Departments: output.Departments,
	}
}

// TestKeywordRequest represents the request body for testing a keyword.
type TestKeywordRequest struct {
	Keyword string `json:"keyword" binding:"required"`
	Limit   int    `json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
}

// TestKeywordResponse represents the ledger transactions a keyword would match.
type TestKeywordResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	MatchCount   int                   `json:"match_count"`
	Warnings     []string              `json:"warnings"`
}

// ToTestKeywordResponse converts the test keyword use case output.
func ToTestKeywordResponse(output *classification.TestKeywordOutput) TestKeywordResponse {
	return TestKeywordResponse{
		Transactions: ToTransactionResponses(output.Transactions),
		MatchCount:   output.MatchCount,
		Warnings:     Warnings(output.Report),
	}
}
