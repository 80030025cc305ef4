package statement

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
)

func TestOFXParser_Parse(t *testing.T) {
	content, err := os.ReadFile("testdata/extrato.ofx")
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	entries, err := NewOFXParser().Parse(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	tests := []struct {
		idx    int
		id     string
		amount string
		day    time.Time
		payee  string
		memo   string
	}{
		{0, "A1", "1500", time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), "PIX RECEBIDO DE FULANO", ""},
		{1, "A2", "-42.9", time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), "UBER *TRIP", "Viagem cliente"},
	}
	for _, tt := range tests {
		got := entries[tt.idx]
		if got.SourceID != tt.id || got.Payee != tt.payee || got.Memo != tt.memo {
			t.Errorf("entry %d: unexpected %+v", tt.idx, got)
		}
		if !got.Amount.Equal(decimal.RequireFromString(tt.amount)) {
			t.Errorf("entry %d: expected amount %s, got %s", tt.idx, tt.amount, got.Amount)
		}
		if !got.PostedAt.Equal(tt.day) {
			t.Errorf("entry %d: expected day %v, got %v", tt.idx, tt.day, got.PostedAt)
		}
	}
}

func TestOFXParser_Malformed(t *testing.T) {
	_, err := NewOFXParser().Parse(context.Background(), []byte("not an ofx file"))
	if !errors.Is(err, domainerror.ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestAmountFromRat(t *testing.T) {
	tests := []struct {
		name string
		rat  *big.Rat
		want string
	}{
		{"whole", big.NewRat(1500, 1), "1500"},
		{"cents", big.NewRat(-4290, 100), "-42.9"},
		{"three decimals", big.NewRat(-42905, 1000), "-42.905"},
		{"sub cent", big.NewRat(1, 10000), "0.0001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := amountFromRat(tt.rat)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
