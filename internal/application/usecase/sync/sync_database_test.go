package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

type memShipments struct{ shipments []*entity.Shipment }

func (m *memShipments) Load(_ context.Context) ([]*entity.Shipment, *valueobject.LoadReport, error) {
	return m.shipments, valueobject.NewLoadReport(), nil
}

type memLedger struct{ transactions []*entity.Transaction }

func (m *memLedger) Load(_ context.Context) ([]*entity.Transaction, *valueobject.LoadReport, error) {
	return m.transactions, valueobject.NewLoadReport(), nil
}

func (m *memLedger) Save(_ context.Context, transactions []*entity.Transaction) error {
	m.transactions = transactions
	return nil
}

type fakeMirror struct {
	err error
}

func (f *fakeMirror) MirrorShipments(_ context.Context, shipments []*entity.Shipment) (int, error) {
	return len(shipments), f.err
}

func (f *fakeMirror) MirrorTransactions(_ context.Context, transactions []*entity.Transaction) (int, error) {
	return len(transactions), f.err
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(_ context.Context) error {
	c.calls++
	return nil
}

func TestSyncDatabaseUseCase(t *testing.T) {
	shipments := &memShipments{shipments: []*entity.Shipment{{WaybillNumber: "1"}, {WaybillNumber: "2"}}}
	ledger := &memLedger{transactions: []*entity.Transaction{
		entity.NewTransaction("A1", time.Now(), decimal.NewFromInt(10), "PIX", ""),
	}}

	tests := []struct {
		name          string
		mirror        *fakeMirror
		wantShipments int
		wantTxs       int
		wantWarning   bool
		wantInvalid   int
	}{
		{name: "mirrors both ledgers", mirror: &fakeMirror{}, wantShipments: 2, wantTxs: 1, wantInvalid: 1},
		{name: "database down", mirror: &fakeMirror{err: errors.New("connection refused")}, wantWarning: true},
		{name: "not configured", wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &countingInvalidator{}
			uc := NewSyncDatabaseUseCase(shipments, ledger, nil, inv)
			if tt.mirror != nil {
				uc = NewSyncDatabaseUseCase(shipments, ledger, tt.mirror, inv)
			}

			out, err := uc.Execute(context.Background(), entity.Session{Operator: "ana"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Shipments != tt.wantShipments || out.Transactions != tt.wantTxs {
				t.Errorf("expected %d/%d, got %d/%d", tt.wantShipments, tt.wantTxs, out.Shipments, out.Transactions)
			}
			if out.Report.Has(valueobject.WarningSourceUnavailable) != tt.wantWarning {
				t.Errorf("unexpected warnings %v", out.Report.Messages())
			}
			if inv.calls != tt.wantInvalid {
				t.Errorf("expected %d invalidations, got %d", tt.wantInvalid, inv.calls)
			}
		})
	}
}
