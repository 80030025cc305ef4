package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

type memLedger struct {
	transactions []*entity.Transaction
	saves        int
}

func (m *memLedger) Load(_ context.Context) ([]*entity.Transaction, *valueobject.LoadReport, error) {
	return m.transactions, valueobject.NewLoadReport(), nil
}

func (m *memLedger) Save(_ context.Context, transactions []*entity.Transaction) error {
	m.saves++
	m.transactions = transactions
	return nil
}

func newLedger() *memLedger {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id, amount, category, costCenter, department, ref string) *entity.Transaction {
		tx := entity.NewTransaction(id, day, decimal.RequireFromString(amount), "desc "+id, "")
		tx.ApplyClassification(category, costCenter, department)
		tx.ReconciledReference = ref
		return tx
	}
	return &memLedger{transactions: []*entity.Transaction{
		mk("1", "1000", "Recebimento", "Financeiro", "Administrativo", "NF-10"),
		mk("2", "-200", "Transporte", "Logística", "Operacional", ""),
		mk("3", "-50", "Transporte", "Logística", "Operacional", ""),
		mk("4", "-75", "Outros", valueobject.UndefinedSentinel, valueobject.UndefinedSentinel, ""),
	}}
}

func TestListTransactionsUseCase_Filter(t *testing.T) {
	uc := NewListTransactionsUseCase(newLedger())

	out, err := uc.Execute(context.Background(), ListTransactionsInput{
		Filter: entity.TransactionFilter{Departments: []string{"Operacional"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Transactions) != 2 || out.Transactions[0].ExternalID != "2" {
		t.Errorf("unexpected transactions %+v", out.Transactions)
	}
}

func TestGetSummaryUseCase(t *testing.T) {
	uc := NewGetSummaryUseCase(newLedger())

	out, err := uc.Execute(context.Background(), GetSummaryInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Totals.Inflow.Equal(decimal.NewFromInt(1000)) ||
		!out.Totals.Outflow.Equal(decimal.NewFromInt(-325)) ||
		!out.Totals.Balance.Equal(decimal.NewFromInt(675)) {
		t.Errorf("unexpected totals %+v", out.Totals)
	}
	if out.Count != 4 || out.Unreconciled != 3 {
		t.Errorf("unexpected counts %d/%d", out.Count, out.Unreconciled)
	}
	if out.ByCategory[0].Category != "Recebimento" || out.ByCategory[len(out.ByCategory)-1].Category != "Transporte" {
		t.Errorf("categories should be sorted by total descending, got %+v", out.ByCategory)
	}
}

func TestGetSummaryUseCase_SkipsMalformedRows(t *testing.T) {
	ledger := newLedger()
	broken := entity.NewTransaction("L1", time.Time{}, decimal.NewFromInt(500), "legado", "")
	broken.MarkUnparsed(entity.FieldDate, "05/13/2024")
	ledger.transactions = append(ledger.transactions, broken)

	out, err := NewGetSummaryUseCase(ledger).Execute(context.Background(), GetSummaryInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Totals.Inflow.Equal(decimal.NewFromInt(1000)) || out.Count != 4 || out.Malformed != 1 {
		t.Errorf("malformed row should be counted apart, got totals %+v count %d malformed %d",
			out.Totals, out.Count, out.Malformed)
	}

	listed, err := NewListTransactionsUseCase(ledger).Execute(context.Background(), ListTransactionsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed.Transactions) != 5 {
		t.Errorf("malformed row should still be listed, got %d rows", len(listed.Transactions))
	}
}

func TestListPendingClassificationUseCase(t *testing.T) {
	out, err := NewListPendingClassificationUseCase(newLedger()).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Transactions) != 1 || out.Transactions[0].ExternalID != "4" {
		t.Errorf("unexpected pending rows %+v", out.Transactions)
	}
}

func TestUpdateClassificationUseCase(t *testing.T) {
	costCenter := "Logística"
	department := "Operacional"

	t.Run("updates and persists", func(t *testing.T) {
		ledger := newLedger()
		uc := NewUpdateClassificationUseCase(ledger)

		tx, err := uc.Execute(context.Background(), UpdateClassificationInput{
			ExternalID: "4",
			CostCenter: &costCenter,
			Department: &department,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.Category != "Outros" || tx.CostCenter != costCenter || tx.Department != department {
			t.Errorf("unexpected classification %+v", tx)
		}
		if ledger.saves != 1 {
			t.Errorf("expected one save, got %d", ledger.saves)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := NewUpdateClassificationUseCase(newLedger()).Execute(context.Background(), UpdateClassificationInput{
			ExternalID: "nope",
			CostCenter: &costCenter,
		})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("empty update", func(t *testing.T) {
		_, err := NewUpdateClassificationUseCase(newLedger()).Execute(context.Background(), UpdateClassificationInput{ExternalID: "4"})
		if !errors.Is(err, domainerror.ErrEmptyClassification) {
			t.Errorf("expected ErrEmptyClassification, got %v", err)
		}
	})
}
