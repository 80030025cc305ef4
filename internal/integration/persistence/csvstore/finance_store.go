package csvstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// Financial ledger columns.
const (
	ColDate        = "Data"
	ColDescription = "Descrição"
	ColValue       = "Valor"
	ColType        = "Tipo"
	ColCategory    = "Categoria"
	ColCostCenter  = "Centro de Custo"
	ColDepartment  = "Setor"
	ColExternalID  = "ID Transação"
	ColReconciled  = "Conciliado com"
	ColMemo        = "Memo"
)

// FinanceHeader is the canonical column set of the financial ledger.
var FinanceHeader = []string{
	ColDate, ColDescription, ColValue, ColType, ColCategory,
	ColCostCenter, ColDepartment, ColExternalID, ColReconciled, ColMemo,
}

// Memo arrived after the first ledgers were written, so its absence is not reported.
var requiredFinanceColumns = FinanceHeader[:len(FinanceHeader)-1]

// FinanceStore implements adapter.TransactionLedger over the financial ledger file.
type FinanceStore struct {
	path string
}

// NewFinanceStore creates a new FinanceStore.
func NewFinanceStore(path string) *FinanceStore {
	return &FinanceStore{path: path}
}

// Load reads the ledger. A missing file is an empty ledger. Rows with an unreadable date
// or amount are kept with their original cell text, so Save writes them back unchanged,
// and are counted as malformed.
func (s *FinanceStore) Load(_ context.Context) ([]*entity.Transaction, *valueobject.LoadReport, error) {
	report := valueobject.NewLoadReport()

	table, err := ReadTable(s.path)
	if err != nil {
		if IsMissing(err) {
			return []*entity.Transaction{}, report, nil
		}
		return nil, nil, domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerReadFailed,
			"failed to read financial ledger",
			err,
		)
	}

	for _, col := range requiredFinanceColumns {
		if !table.Has(col) {
			report.MissingColumn(col)
		}
	}

	transactions := make([]*entity.Transaction, 0, len(table.Rows))
	badDates, badAmounts := 0, 0
	for _, row := range table.Rows {
		report.RowsRead++

		dateText := table.Get(row, ColDate)
		date, dateErr := ParseDate(dateText)
		amountText := table.Get(row, ColValue)
		amount, amountOK := ParseAmountOrZero(amountText)

		tx := entity.NewTransaction(
			table.Get(row, ColExternalID), date, amount,
			table.Get(row, ColDescription), table.Get(row, ColMemo),
		)
		if dateErr != nil {
			badDates++
			tx.Date = time.Time{}
			tx.MarkUnparsed(entity.FieldDate, dateText)
		}
		if !amountOK {
			badAmounts++
			tx.MarkUnparsed(entity.FieldAmount, amountText)
		}
		if label := table.Get(row, ColType); label != "" {
			tx.Type = entity.TransactionType(label)
		}
		tx.ApplyClassification(
			table.Get(row, ColCategory),
			table.Get(row, ColCostCenter),
			table.Get(row, ColDepartment),
		)
		tx.ReconciledReference = table.Get(row, ColReconciled)
		transactions = append(transactions, tx)
	}

	report.Malformed(badDates, "financial rows with unreadable date, left out of totals")
	report.Malformed(badAmounts, "financial rows with unreadable amount, left out of totals")
	if len(report.Warnings) > 0 {
		slog.Warn("Financial ledger loaded with warnings", "path", s.path, "warnings", report.Messages())
	}

	return transactions, report, nil
}

// Save replaces the ledger file.
func (s *FinanceStore) Save(_ context.Context, transactions []*entity.Transaction) error {
	if err := WriteTable(s.path, FinanceHeader, financeRows(transactions)); err != nil {
		return fmt.Errorf("failed to write financial ledger: %w", err)
	}
	return nil
}

// Snapshot returns the current ledger file content, or nil when there is none.
func (s *FinanceStore) Snapshot(ctx context.Context) ([]byte, error) {
	transactions, _, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, nil
	}
	return EncodeTable(FinanceHeader, financeRows(transactions))
}

func financeRows(transactions []*entity.Transaction) [][]string {
	rows := make([][]string, 0, len(transactions))
	for _, tx := range transactions {
		date, ok := tx.RawText(entity.FieldDate)
		if !ok {
			date = FormatDate(tx.Date)
		}
		amount, ok := tx.RawText(entity.FieldAmount)
		if !ok {
			amount = tx.Amount.StringFixed(2)
		}
		rows = append(rows, []string{
			date,
			tx.Description,
			amount,
			string(tx.Type),
			tx.Category,
			tx.CostCenter,
			tx.Department,
			tx.ExternalID,
			tx.ReconciledReference,
			tx.Memo,
		})
	}
	return rows
}
