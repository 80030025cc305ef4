package dto

import (
	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/application/usecase/classification"
	"github.com/freight-backoffice/backend/internal/application/usecase/finance"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// TransactionResponse represents a single ledger transaction in API responses.
type TransactionResponse struct {
	ExternalID          string `json:"external_id"`
	Date                string `json:"date"`
	Amount              string `json:"amount"`
	Type                string `json:"type"`
	Description         string `json:"description"`
	Memo                string `json:"memo,omitempty"`
	Category            string `json:"category"`
	CostCenter          string `json:"cost_center"`
	Department          string `json:"department"`
	ReconciledReference string `json:"reconciled_reference,omitempty"`
	NeedsDefinition     bool   `json:"needs_definition"`
	Malformed           bool   `json:"malformed,omitempty"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ExternalID:          t.ExternalID,
		Date:                transactionDate(t),
		Amount:              transactionAmount(t),
		Type:                string(t.Type),
		Description:         t.Description,
		Memo:                t.Memo,
		Category:            t.Category,
		CostCenter:          t.CostCenter,
		Department:          t.Department,
		ReconciledReference: t.ReconciledReference,
		NeedsDefinition:     valueobject.NeedsDefinition(t.CostCenter, t.Department),
		Malformed:           t.IsMalformed(),
	}
}

// Unreadable cells are shown as they are stored.
func transactionDate(t *entity.Transaction) string {
	if raw, ok := t.RawText(entity.FieldDate); ok {
		return raw
	}
	return formatDate(t.Date)
}

func transactionAmount(t *entity.Transaction) string {
	if raw, ok := t.RawText(entity.FieldAmount); ok {
		return raw
	}
	return money(t.Amount)
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(transactions []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

// TransactionTable is the export table of a transaction list.
func TransactionTable(name string, transactions []*entity.Transaction) export.Table {
	rows := make([][]string, len(transactions))
	for i, t := range transactions {
		rows[i] = []string{
			transactionDate(t), t.Description, transactionAmount(t), string(t.Type), t.Category,
			t.CostCenter, t.Department, t.ExternalID, t.ReconciledReference, t.Memo,
		}
	}
	return export.Table{
		Name: name,
		Header: []string{
			"Data", "Descrição", "Valor", "Tipo", "Categoria",
			"Centro de Custo", "Setor", "ID Transação", "Conciliado com", "Memo",
		},
		Rows: rows,
	}
}

// TransactionListResponse represents a list of transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
	Warnings     []string              `json:"warnings"`
}

// ToTransactionListResponse converts a transaction list with its load report.
func ToTransactionListResponse(transactions []*entity.Transaction, report *valueobject.LoadReport) TransactionListResponse {
	return TransactionListResponse{
		Transactions: ToTransactionResponses(transactions),
		Count:        len(transactions),
		Warnings:     Warnings(report),
	}
}

// TotalsResponse represents inflow, outflow and balance.
type TotalsResponse struct {
	Inflow  string `json:"inflow"`
	Outflow string `json:"outflow"`
	Balance string `json:"balance"`
}

// ToTotalsResponse converts transaction totals.
func ToTotalsResponse(t entity.TransactionTotals) TotalsResponse {
	return TotalsResponse{
		Inflow:  money(t.Inflow),
		Outflow: money(t.Outflow),
		Balance: money(t.Balance),
	}
}

// CategoryTotalResponse represents the total of one category.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// TransactionSummaryResponse represents the financial summary.
type TransactionSummaryResponse struct {
	Totals       TotalsResponse          `json:"totals"`
	ByCategory   []CategoryTotalResponse `json:"by_category"`
	Count        int                     `json:"count"`
	Unreconciled int                     `json:"unreconciled"`
	Malformed    int                     `json:"malformed"`
	Warnings     []string                `json:"warnings"`
}

// ToTransactionSummaryResponse converts the summary use case output.
func ToTransactionSummaryResponse(output *finance.GetSummaryOutput) TransactionSummaryResponse {
	byCategory := make([]CategoryTotalResponse, len(output.ByCategory))
	for i, c := range output.ByCategory {
		byCategory[i] = CategoryTotalResponse{Category: c.Category, Total: money(c.Total)}
	}
	return TransactionSummaryResponse{
		Totals:       ToTotalsResponse(output.Totals),
		ByCategory:   byCategory,
		Count:        output.Count,
		Unreconciled: output.Unreconciled,
		Malformed:    output.Malformed,
		Warnings:     Warnings(output.Report),
	}
}

// UpdateClassificationRequest represents the request body for a classification update.
// Omitted fields are left unchanged.
type UpdateClassificationRequest struct {
	Category   *string `json:"category,omitempty"`
	CostCenter *string `json:"cost_center,omitempty"`
	Department *string `json:"department,omitempty"`
}

// SuggestClassificationsRequest represents the request body for advisor suggestions.
type SuggestClassificationsRequest struct {
	Limit int `json:"limit,omitempty" binding:"omitempty,min=1,max=50"`
}

// SuggestionResponse represents one advisor suggestion.
type SuggestionResponse struct {
	ExternalID string  `json:"external_id"`
	Category   string  `json:"category"`
	CostCenter string  `json:"cost_center"`
	Department string  `json:"department"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// SuggestClassificationsResponse represents the advisor suggestions.
type SuggestClassificationsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
	Pending     int                  `json:"pending"`
	Warnings    []string             `json:"warnings"`
}

// ToSuggestClassificationsResponse converts the suggestion use case output.
func ToSuggestClassificationsResponse(output *classification.SuggestClassificationsOutput) SuggestClassificationsResponse {
	suggestions := make([]SuggestionResponse, len(output.Suggestions))
	for i, s := range output.Suggestions {
		suggestions[i] = toSuggestionResponse(s)
	}
	return SuggestClassificationsResponse{
		Suggestions: suggestions,
		Pending:     output.Pending,
		Warnings:    Warnings(output.Report),
	}
}

func toSuggestionResponse(s adapter.AdvisorSuggestion) SuggestionResponse {
	return SuggestionResponse{
		ExternalID: s.ExternalID,
		Category:   s.Category,
		CostCenter: s.CostCenter,
		Department: s.Department,
		Confidence: s.Confidence,
		Reasoning:  s.Reasoning,
	}
}
