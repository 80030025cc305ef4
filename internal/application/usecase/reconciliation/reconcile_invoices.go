package reconciliation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ReconcileInvoicesInput carries the document to reconcile. Lines take precedence over
// Document; when both are empty the configured default document is used.
type ReconcileInvoicesInput struct {
	Session  entity.Session
	Lines    []valueobject.DocumentLine
	Document *adapter.Document
}

// ReconcileInvoicesOutput is the joined table and its summary. When Automatic is false no
// document line was available and Unreconciled lists the transactions left for manual pairing.
type ReconcileInvoicesOutput struct {
	Automatic    bool
	Records      []valueobject.ReconciliationRecord
	Summary      valueobject.ReconciliationSummary
	Unreconciled []*entity.Transaction
	Report       *valueobject.LoadReport
}

// ReconcileInvoicesUseCase checks invoice document values against the shipment ledger.
type ReconcileInvoicesUseCase struct {
	extractor    adapter.DocumentExtractor
	documents    adapter.DocumentStore
	shipments    adapter.ShipmentLedger
	transactions adapter.TransactionLedger
}

// NewReconcileInvoicesUseCase creates a new ReconcileInvoicesUseCase instance.
// extractor and documents may be nil.
func NewReconcileInvoicesUseCase(
	extractor adapter.DocumentExtractor,
	documents adapter.DocumentStore,
	shipments adapter.ShipmentLedger,
	transactions adapter.TransactionLedger,
) *ReconcileInvoicesUseCase {
	return &ReconcileInvoicesUseCase{
		extractor:    extractor,
		documents:    documents,
		shipments:    shipments,
		transactions: transactions,
	}
}

// Execute runs the automatic reconciliation, degrading to the manual flow when no
// document line can be obtained.
func (uc *ReconcileInvoicesUseCase) Execute(ctx context.Context, input ReconcileInvoicesInput) (*ReconcileInvoicesOutput, error) {
	report := valueobject.NewLoadReport()
	lines := input.Lines
	if len(lines) == 0 {
		lines = uc.extract(ctx, input.Document, report)
	}

	if len(lines) == 0 {
		transactions, ledgerReport, err := uc.transactions.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load ledger: %w", err)
		}
		report.Merge(ledgerReport)

		slog.Warn("No document lines to reconcile, falling back to manual pairing",
			"operator", input.Session.Operator,
			"request_id", input.Session.RequestID,
		)
		return &ReconcileInvoicesOutput{
			Records:      []valueobject.ReconciliationRecord{},
			Unreconciled: unreconciled(transactions),
			Report:       report,
		}, nil
	}

	shipments, shipmentReport, err := uc.shipments.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipment ledger: %w", err)
	}
	report.Merge(shipmentReport)

	records, summary := ReconcileDocuments(lines, shipments)

	slog.Info("Invoice reconciliation completed",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"lines", len(lines),
		"reconciled", summary.Reconciled,
		"divergent", summary.Divergent,
		"not_found", summary.NotFound,
	)

	return &ReconcileInvoicesOutput{
		Automatic:    true,
		Records:      records,
		Summary:      summary,
		Unreconciled: []*entity.Transaction{},
		Report:       report,
	}, nil
}

// extract never fails: every problem becomes a warning and an empty line set.
func (uc *ReconcileInvoicesUseCase) extract(ctx context.Context, doc *adapter.Document, report *valueobject.LoadReport) []valueobject.DocumentLine {
	if doc == nil && uc.documents != nil {
		def, err := uc.documents.DefaultDocument(ctx)
		if err != nil {
			report.SourceUnavailable("default invoice document unavailable: %v", err)
			return nil
		}
		doc = def
	}
	if doc == nil {
		report.SourceUnavailable("no invoice document provided")
		return nil
	}
	if uc.extractor == nil {
		report.SourceUnavailable("document extractor is not available")
		return nil
	}

	lines, err := uc.extractor.Extract(ctx, *doc)
	if err != nil {
		slog.Warn("Document extraction failed", "document", doc.Name, "error", err)
		report.SourceUnavailable("could not extract lines from %s: %v", doc.Name, err)
		return nil
	}
	if len(lines) == 0 {
		report.SourceUnavailable("no invoice lines found in %s", doc.Name)
	}
	return lines
}
