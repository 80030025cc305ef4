package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewTransaction_TruncatesDateAndDerivesType(t *testing.T) {
	posted := time.Date(2024, 3, 15, 18, 45, 12, 0, time.FixedZone("BRT", -3*3600))

	income := NewTransaction("A1", posted, decimal.RequireFromString("10.50"), "PIX RECEBIDO", "")
	if got := income.Date.Format("2006-01-02"); got != "2024-03-15" {
		t.Errorf("expected date 2024-03-15, got %s", got)
	}
	if income.Type != TransactionTypeIncome {
		t.Errorf("expected %s, got %s", TransactionTypeIncome, income.Type)
	}

	zero := NewTransaction("A2", posted, decimal.Zero, "AJUSTE", "")
	if zero.Type != TransactionTypeExpense {
		t.Errorf("zero amount should be %s, got %s", TransactionTypeExpense, zero.Type)
	}
}

func TestTransactionFilter_Matches(t *testing.T) {
	tx := &Transaction{Category: "Transporte", CostCenter: "Logística", Department: "Operacional"}

	tests := []struct {
		name   string
		filter TransactionFilter
		want   bool
	}{
		{"empty filter", TransactionFilter{}, true},
		{"category match", TransactionFilter{Categories: []string{"Viagem", "Transporte"}}, true},
		{"category miss", TransactionFilter{Categories: []string{"Viagem"}}, false},
		{"all sets match", TransactionFilter{
			Categories:  []string{"Transporte"},
			CostCenters: []string{"Logística"},
			Departments: []string{"Operacional"},
		}, true},
		{"department miss", TransactionFilter{Departments: []string{"Administrativo"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tx); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextPickupNumber(t *testing.T) {
	if got := NextPickupNumber(nil); got != FirstPickupNumber {
		t.Errorf("empty table: expected %d, got %d", FirstPickupNumber, got)
	}

	orders := []*PickupOrder{{Number: 1001}, {Number: 1007}, {Number: 1003}}
	if got := NextPickupNumber(orders); got != 1008 {
		t.Errorf("expected 1008, got %d", got)
	}
}
