package dto

import (
	"github.com/freight-backoffice/backend/internal/application/usecase/statement"
)

// CategoryCountResponse represents the number of previewed transactions in one category.
type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// StatementPreviewResponse represents the preview of an uploaded statement.
type StatementPreviewResponse struct {
	Transactions   []TransactionResponse   `json:"transactions"`
	Totals         TotalsResponse          `json:"totals"`
	Categories     []CategoryCountResponse `json:"categories"`
	Unclassified   int                     `json:"unclassified"`
	NewCount       int                     `json:"new_count"`
	DuplicateCount int                     `json:"duplicate_count"`
	Warnings       []string                `json:"warnings"`
}

// ToStatementPreviewResponse converts the preview use case output.
func ToStatementPreviewResponse(output *statement.PreviewStatementOutput) StatementPreviewResponse {
	categories := make([]CategoryCountResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryCountResponse{Category: c.Category, Count: c.Count}
	}
	return StatementPreviewResponse{
		Transactions:   ToTransactionResponses(output.Transactions),
		Totals:         ToTotalsResponse(output.Totals),
		Categories:     categories,
		Unclassified:   output.Unclassified,
		NewCount:       output.NewCount,
		DuplicateCount: output.DuplicateCount,
		Warnings:       Warnings(output.Report),
	}
}

// StatementImportResponse represents the result of merging a statement into the ledger.
type StatementImportResponse struct {
	Parsed         int                   `json:"parsed"`
	Added          []TransactionResponse `json:"added"`
	AddedCount     int                   `json:"added_count"`
	Skipped        int                   `json:"skipped"`
	Replaced       int                   `json:"replaced"`
	Written        bool                  `json:"written"`
	BackupLocation string                `json:"backup_location,omitempty"`
	Warnings       []string              `json:"warnings"`
}

// ToStatementImportResponse converts the import use case output.
func ToStatementImportResponse(output *statement.ImportStatementOutput) StatementImportResponse {
	return StatementImportResponse{
		Parsed:         output.Parsed,
		Added:          ToTransactionResponses(output.Added),
		AddedCount:     len(output.Added),
		Skipped:        output.Skipped,
		Replaced:       output.Replaced,
		Written:        output.Written,
		BackupLocation: output.BackupLocation,
		Warnings:       Warnings(output.Report),
	}
}
