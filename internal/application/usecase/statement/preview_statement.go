package statement

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// PreviewStatementInput represents the input for previewing a statement file.
type PreviewStatementInput struct {
	Session entity.Session
	Content []byte
}

// CategoryCount is the number of previewed transactions per category.
type CategoryCount struct {
	Category string
	Count    int
}

// PreviewStatementOutput represents the classified transactions of a statement, not yet written.
type PreviewStatementOutput struct {
	Transactions   []*entity.Transaction
	Totals         entity.TransactionTotals
	Categories     []CategoryCount
	Unclassified   int
	NewCount       int
	DuplicateCount int
	Report         *valueobject.LoadReport
}

// PreviewStatementUseCase parses, normalizes and classifies a statement without writing anything.
type PreviewStatementUseCase struct {
	parser     adapter.StatementParser
	normalizer *Normalizer
	ledger     adapter.TransactionLedger
}

// NewPreviewStatementUseCase creates a new PreviewStatementUseCase instance.
func NewPreviewStatementUseCase(
	parser adapter.StatementParser,
	normalizer *Normalizer,
	ledger adapter.TransactionLedger,
) *PreviewStatementUseCase {
	return &PreviewStatementUseCase{
		parser:     parser,
		normalizer: normalizer,
		ledger:     ledger,
	}
}

// Execute performs the preview.
func (uc *PreviewStatementUseCase) Execute(ctx context.Context, input PreviewStatementInput) (*PreviewStatementOutput, error) {
	if len(input.Content) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyStatement,
			"statement file is empty",
			domainerror.ErrEmptyStatement,
		)
	}

	transactions, report := parseAndNormalize(ctx, uc.parser, uc.normalizer, input.Content)

	ledger, ledgerReport, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	report.Merge(ledgerReport)

	_, added := MergeTransactions(ledger, transactions)

	output := &PreviewStatementOutput{
		Transactions:   transactions,
		Totals:         Totals(transactions),
		Categories:     countCategories(transactions),
		NewCount:       len(added),
		DuplicateCount: len(transactions) - len(added),
		Report:         report,
	}
	for _, tx := range transactions {
		if valueobject.NeedsDefinition(tx.CostCenter, tx.Department) {
			output.Unclassified++
		}
	}

	slog.Info("Statement previewed",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"transactions", len(transactions),
		"new", output.NewCount,
	)

	return output, nil
}

// parseAndNormalize never fails: parser errors become warnings with an empty result.
func parseAndNormalize(
	ctx context.Context,
	parser adapter.StatementParser,
	normalizer *Normalizer,
	content []byte,
) ([]*entity.Transaction, *valueobject.LoadReport) {
	report := valueobject.NewLoadReport()

	if parser == nil {
		report.SourceUnavailable("statement parser is not available")
		return []*entity.Transaction{}, report
	}

	entries, err := parser.Parse(ctx, content)
	if err != nil {
		slog.Warn("Statement parsing failed", "error", err)
		if isMalformed(err) {
			report.Malformed(1, "statement file could not be read: %v", err)
		} else {
			report.SourceUnavailable("statement parser failed: %v", err)
		}
		return []*entity.Transaction{}, report
	}

	transactions, normReport := normalizer.Normalize(entries)
	report.Merge(normReport)
	return transactions, report
}

// Totals sums inflows, outflows and the resulting balance.
func Totals(transactions []*entity.Transaction) entity.TransactionTotals {
	totals := entity.TransactionTotals{Inflow: decimal.Zero, Outflow: decimal.Zero}
	for _, tx := range transactions {
		if tx.Amount.IsPositive() {
			totals.Inflow = totals.Inflow.Add(tx.Amount)
		} else {
			totals.Outflow = totals.Outflow.Add(tx.Amount)
		}
	}
	totals.Balance = totals.Inflow.Add(totals.Outflow)
	return totals
}

func countCategories(transactions []*entity.Transaction) []CategoryCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, tx := range transactions {
		if _, ok := counts[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		counts[tx.Category]++
	}

	out := make([]CategoryCount, len(order))
	for i, category := range order {
		out[i] = CategoryCount{Category: category, Count: counts[category]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
