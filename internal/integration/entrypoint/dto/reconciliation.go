package dto

import (
	"github.com/freight-backoffice/backend/internal/application/usecase/reconciliation"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// ManualLinkRequest represents the request body for pairing a transaction with a document.
type ManualLinkRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
	Reference  string `json:"reference" binding:"required"`
}

// InvoiceLineRequest represents one externally extracted invoice line.
type InvoiceLineRequest struct {
	DocumentNumber string `json:"document_number" binding:"required"`
	Date           string `json:"date,omitempty"`
	Value          string `json:"value" binding:"required"`
}

// ReconcileInvoicesRequest represents a JSON body of already extracted invoice lines.
type ReconcileInvoicesRequest struct {
	Lines []InvoiceLineRequest `json:"lines" binding:"dive"`
}

// ReconciliationRecordResponse represents one joined invoice line.
type ReconciliationRecordResponse struct {
	DocumentNumber string  `json:"document_number"`
	DocumentDate   *string `json:"document_date,omitempty"`
	InvoiceValue   string  `json:"invoice_value"`
	LedgerValue    *string `json:"ledger_value"`
	Delta          *string `json:"delta"`
	Status         string  `json:"status"`
}

// ReconciliationSummaryResponse represents per-status counts.
type ReconciliationSummaryResponse struct {
	Reconciled int `json:"reconciled"`
	Divergent  int `json:"divergent"`
	NotFound   int `json:"not_found"`
	Total      int `json:"total"`
}

// ReconcileInvoicesResponse represents an automatic reconciliation run. When Automatic is
// false, Unreconciled lists the transactions left for manual pairing.
type ReconcileInvoicesResponse struct {
	Automatic    bool                           `json:"automatic"`
	Records      []ReconciliationRecordResponse `json:"records"`
	Summary      ReconciliationSummaryResponse  `json:"summary"`
	Unreconciled []TransactionResponse          `json:"unreconciled"`
	Warnings     []string                       `json:"warnings"`
}

// ToReconciliationRecordResponses converts reconciliation records.
func ToReconciliationRecordResponses(records []valueobject.ReconciliationRecord) []ReconciliationRecordResponse {
	out := make([]ReconciliationRecordResponse, len(records))
	for i, r := range records {
		out[i] = ReconciliationRecordResponse{
			DocumentNumber: r.DocumentNumber,
			DocumentDate:   formatOptionalDate(r.DocumentDate),
			InvoiceValue:   money(r.InvoiceValue),
			LedgerValue:    optionalMoney(r.LedgerValue),
			Delta:          optionalMoney(r.Delta),
			Status:         string(r.Status),
		}
	}
	return out
}

// ToReconcileInvoicesResponse converts the reconcile invoices use case output.
func ToReconcileInvoicesResponse(output *reconciliation.ReconcileInvoicesOutput) ReconcileInvoicesResponse {
	return ReconcileInvoicesResponse{
		Automatic: output.Automatic,
		Records:   ToReconciliationRecordResponses(output.Records),
		Summary: ReconciliationSummaryResponse{
			Reconciled: output.Summary.Reconciled,
			Divergent:  output.Summary.Divergent,
			NotFound:   output.Summary.NotFound,
			Total:      output.Summary.Total,
		},
		Unreconciled: ToTransactionResponses(output.Unreconciled),
		Warnings:     Warnings(output.Report),
	}
}

// ReconciliationTable is the export table of a reconciliation run.
func ReconciliationTable(records []valueobject.ReconciliationRecord) export.Table {
	rows := make([][]string, len(records))
	for i, r := range records {
		date := ""
		if r.DocumentDate != nil {
			date = formatDate(*r.DocumentDate)
		}
		ledger, delta := "", ""
		if r.LedgerValue != nil {
			ledger = money(*r.LedgerValue)
		}
		if r.Delta != nil {
			delta = money(*r.Delta)
		}
		rows[i] = []string{r.DocumentNumber, date, money(r.InvoiceValue), ledger, delta, string(r.Status)}
	}
	return export.Table{
		Name:   "conciliacao",
		Header: []string{"Número", "Data", "Valor do frete (Fatura)", "Valor do frete", "Diferença", "Status"},
		Rows:   rows,
	}
}
