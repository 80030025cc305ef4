package classification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(valueobject.DefaultRuleTable())

	tests := []struct {
		name        string
		description string
		memo        string
		want        valueobject.Classification
	}{
		{
			name:        "pix transfer",
			description: "PIX RECEBIDO DE FULANO",
			want:        valueobject.Classification{Category: "Transferência", CostCenter: "Financeiro", Department: "Administrativo"},
		},
		{
			name:        "no keyword",
			description: "COMPRA DIVERSA",
			want:        valueobject.Unclassified(),
		},
		{
			name:        "case insensitive",
			description: "Uber Trip",
			want:        valueobject.Classification{Category: "Transporte", CostCenter: "Logística", Department: "Operacional"},
		},
		{
			name:        "keyword in memo",
			description: "DEBITO",
			memo:        "boleto condominio",
			want:        valueobject.Classification{Category: "Pagamento", CostCenter: "Financeiro", Department: "Administrativo"},
		},
		{
			name:        "substring not word boundary",
			description: "AGOLPE LTDA",
			want:        valueobject.Classification{Category: "Viagem", CostCenter: "Logística", Department: "Operacional"},
		},
		{
			name:        "literal asterisk keyword",
			description: "PAG*MERCADO",
			want:        valueobject.Classification{Category: "Cartão de Crédito", CostCenter: "Financeiro", Department: "Administrativo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(tt.description, tt.memo); got != tt.want {
				t.Errorf("Classify(%q, %q) = %+v, want %+v", tt.description, tt.memo, got, tt.want)
			}
		})
	}
}

func TestClassifier_FirstMatchWins(t *testing.T) {
	rules := valueobject.RuleTable{
		{Keyword: "uber", Classification: valueobject.Classification{Category: "First"}},
		{Keyword: "UBER EATS", Classification: valueobject.Classification{Category: "Second"}},
	}
	classifier := NewClassifier(rules)

	if got := classifier.Classify("UBER EATS PEDIDO", ""); got.Category != "First" {
		t.Errorf("expected earlier rule to win, got %s", got.Category)
	}

	// Pix precedes TED in the default table.
	def := NewClassifier(valueobject.DefaultRuleTable())
	if got := def.Classify("TED VIA PIX", ""); got.Category != "Transferência" || got.CostCenter != "Financeiro" {
		t.Errorf("unexpected classification %+v", got)
	}
	if got := def.Classify("BOLETO PIX", ""); got.Category != "Transferência" {
		t.Errorf("PIX appears before BOLETO in the table, got %s", got.Category)
	}
}

func TestClassifier_IsPure(t *testing.T) {
	rules := valueobject.DefaultRuleTable()
	classifier := NewClassifier(rules)

	first := classifier.Classify("LATAM AIRLINES", "")
	_ = classifier.Classify("COMPRA DIVERSA", "")
	_ = classifier.Classify("PIX", "")

	// Mutating the caller's table must not affect the classifier.
	rules[8].Category = "Mutated"

	if again := classifier.Classify("LATAM AIRLINES", ""); again != first {
		t.Errorf("classification changed between calls: %+v vs %+v", first, again)
	}
	if first.Category != "Viagem" {
		t.Errorf("expected Viagem, got %s", first.Category)
	}
}

type memLedger struct {
	transactions []*entity.Transaction
	saved        [][]*entity.Transaction
	loadErr      error
}

func (m *memLedger) Load(_ context.Context) ([]*entity.Transaction, *valueobject.LoadReport, error) {
	if m.loadErr != nil {
		return nil, nil, m.loadErr
	}
	return m.transactions, valueobject.NewLoadReport(), nil
}

func (m *memLedger) Save(_ context.Context, transactions []*entity.Transaction) error {
	m.saved = append(m.saved, transactions)
	m.transactions = transactions
	return nil
}

func sampleLedger() *memLedger {
	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	mk := func(id, desc, costCenter string) *entity.Transaction {
		tx := entity.NewTransaction(id, day, decimal.NewFromInt(-10), desc, "")
		tx.ApplyClassification("Outros", costCenter, costCenter)
		return tx
	}
	return &memLedger{transactions: []*entity.Transaction{
		mk("1", "UBER TRIP 1", "Logística"),
		mk("2", "uber trip 2", valueobject.UndefinedSentinel),
		mk("3", "POSTO SHELL", valueobject.UndefinedSentinel),
		mk("4", "UBER TRIP 3", "Logística"),
	}}
}

func TestTestKeywordUseCase(t *testing.T) {
	uc := NewTestKeywordUseCase(sampleLedger())

	out, err := uc.Execute(context.Background(), TestKeywordInput{Keyword: "Uber", Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.MatchCount != 3 {
		t.Errorf("expected 3 matches, got %d", out.MatchCount)
	}
	if len(out.Transactions) != 2 {
		t.Errorf("expected limit of 2 transactions, got %d", len(out.Transactions))
	}

	_, err = uc.Execute(context.Background(), TestKeywordInput{Keyword: "  "})
	if !errors.Is(err, domainerror.ErrEmptyKeyword) {
		t.Errorf("expected ErrEmptyKeyword, got %v", err)
	}
}

type fakeAdvisor struct {
	available bool
	requests  []adapter.AdvisorRequest
	err       error
}

func (f *fakeAdvisor) IsAvailable() bool { return f.available }

func (f *fakeAdvisor) Suggest(_ context.Context, req adapter.AdvisorRequest) ([]adapter.AdvisorSuggestion, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]adapter.AdvisorSuggestion, len(req.Transactions))
	for i, tx := range req.Transactions {
		out[i] = adapter.AdvisorSuggestion{ExternalID: tx.ExternalID, Category: "Combustível", CostCenter: "Logística", Department: "Operacional"}
	}
	return out, nil
}

func TestSuggestClassificationsUseCase(t *testing.T) {
	classifier := NewClassifier(valueobject.DefaultRuleTable())

	t.Run("advisor unavailable", func(t *testing.T) {
		uc := NewSuggestClassificationsUseCase(sampleLedger(), nil, classifier)
		_, err := uc.Execute(context.Background(), SuggestClassificationsInput{})
		if !errors.Is(err, domainerror.ErrAdvisorUnavailable) {
			t.Errorf("expected ErrAdvisorUnavailable, got %v", err)
		}
	})

	t.Run("only pending rows are sent", func(t *testing.T) {
		advisor := &fakeAdvisor{available: true}
		ledger := sampleLedger()
		uc := NewSuggestClassificationsUseCase(ledger, advisor, classifier)

		out, err := uc.Execute(context.Background(), SuggestClassificationsInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Pending != 2 || len(out.Suggestions) != 2 {
			t.Errorf("expected 2 pending suggestions, got %d/%d", out.Pending, len(out.Suggestions))
		}
		if len(advisor.requests) != 1 || len(advisor.requests[0].Categories) == 0 {
			t.Errorf("expected one request carrying option lists, got %+v", advisor.requests)
		}
		if len(ledger.saved) != 0 {
			t.Error("suggestions must not be applied to the ledger")
		}
	})

	t.Run("advisor failure", func(t *testing.T) {
		advisor := &fakeAdvisor{available: true, err: errors.New("quota")}
		uc := NewSuggestClassificationsUseCase(sampleLedger(), advisor, classifier)
		_, err := uc.Execute(context.Background(), SuggestClassificationsInput{})
		var clsErr *domainerror.ClassificationError
		if !errors.As(err, &clsErr) || clsErr.Code != domainerror.ErrCodeAdvisorRequestFailed {
			t.Errorf("expected advisor request failure, got %v", err)
		}
	})
}
