package statement

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/application/usecase/classification"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

func newNormalizer() *Normalizer {
	return NewNormalizer(classification.NewClassifier(valueobject.DefaultRuleTable()))
}

func tx(id string) *entity.Transaction {
	return entity.NewTransaction(id, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(1), "X", "")
}

func ids(transactions []*entity.Transaction) []string {
	out := make([]string, len(transactions))
	for i, t := range transactions {
		out[i] = t.ExternalID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExternalIDString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", " A1 ", "A1"},
		{"int", 123, "123"},
		{"int64", int64(9007199254740993), "9007199254740993"},
		{"integral float", float64(123), "123"},
		{"fractional float", 12.5, "12.5"},
		{"json number", json.Number("456"), "456"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExternalIDString(tt.in); got != tt.want {
				t.Errorf("ExternalIDString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	posted := time.Date(2024, 4, 30, 22, 15, 0, 0, time.UTC)
	entries := []entity.StatementEntry{
		{SourceID: 1001, PostedAt: posted, Amount: decimal.RequireFromString("150.25"), Payee: "PIX RECEBIDO", Memo: "CLIENTE"},
		{SourceID: "", PostedAt: posted, Amount: decimal.NewFromInt(-5), Payee: "SEM ID"},
		{SourceID: "F2", PostedAt: posted, Amount: decimal.RequireFromString("-80"), Payee: "POSTO", Memo: "uber"},
	}

	transactions, report := newNormalizer().Normalize(entries)

	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(transactions))
	}
	if report.MalformedRows != 1 {
		t.Errorf("expected 1 malformed row, got %d", report.MalformedRows)
	}

	first := transactions[0]
	if first.ExternalID != "1001" || first.Type != entity.TransactionTypeIncome {
		t.Errorf("unexpected first transaction %+v", first)
	}
	if first.Date.Format("2006-01-02") != "2024-04-30" {
		t.Errorf("expected calendar day, got %s", first.Date)
	}
	if first.Category != "Transferência" || first.ReconciledReference != "" {
		t.Errorf("unexpected classification %+v", first)
	}

	second := transactions[1]
	if second.Type != entity.TransactionTypeExpense || second.Category != "Transporte" {
		t.Errorf("expected memo keyword to classify expense, got %+v", second)
	}
}

func TestMergeTransactions_Scenario(t *testing.T) {
	ledger := []*entity.Transaction{tx("A1"), tx("A2")}
	incoming := []*entity.Transaction{tx("A2"), tx("A3")}

	merged, added := MergeTransactions(ledger, incoming)

	if !equalIDs(ids(merged), []string{"A1", "A2", "A3"}) {
		t.Errorf("unexpected merged ids %v", ids(merged))
	}
	if !equalIDs(ids(added), []string{"A3"}) {
		t.Errorf("expected only A3 added, got %v", ids(added))
	}
	if len(ledger) != 2 {
		t.Error("input ledger must not be modified")
	}
}

func TestMergeTransactions_Idempotent(t *testing.T) {
	batches := [][]*entity.Transaction{
		{},
		{tx("B1")},
		{tx("B1"), tx("B2"), tx("B1")},
		{tx("A1"), tx("C9")},
	}
	ledger := []*entity.Transaction{tx("A1"), {ExternalID: ""}}

	for _, batch := range batches {
		once, _ := MergeTransactions(ledger, batch)
		twice, addedAgain := MergeTransactions(once, batch)
		if !equalIDs(ids(once), ids(twice)) {
			t.Errorf("merge not idempotent: %v vs %v", ids(once), ids(twice))
		}
		if len(addedAgain) != 0 {
			t.Errorf("re-merge added %v", ids(addedAgain))
		}
	}
}

func TestMergeTransactions_Edges(t *testing.T) {
	legacy := &entity.Transaction{ExternalID: ""}
	ledger := []*entity.Transaction{legacy, tx("A1")}
	incoming := []*entity.Transaction{tx("N1"), tx("N1"), {ExternalID: ""}, tx("N2")}

	merged, added := MergeTransactions(ledger, incoming)

	if !equalIDs(ids(added), []string{"N1", "N2"}) {
		t.Errorf("expected in-batch duplicate and empty id dropped, got %v", ids(added))
	}
	if merged[0] != legacy {
		t.Error("legacy row without id must be preserved in place")
	}
	seen := map[string]int{}
	for _, m := range merged {
		if m.ExternalID != "" {
			seen[m.ExternalID]++
			if seen[m.ExternalID] > 1 {
				t.Errorf("duplicate id %s in merged ledger", m.ExternalID)
			}
		}
	}
}

func TestReplaceTransactions(t *testing.T) {
	old := tx("A2")
	old.ReconciledReference = "NF-1"
	ledger := []*entity.Transaction{tx("A1"), old, tx("A3")}
	incoming := []*entity.Transaction{tx("A2"), tx("A4")}

	merged, added, replaced := ReplaceTransactions(ledger, incoming)

	if replaced != 1 {
		t.Errorf("expected 1 replaced, got %d", replaced)
	}
	if !equalIDs(ids(merged), []string{"A1", "A3", "A2", "A4"}) {
		t.Errorf("unexpected merged ids %v", ids(merged))
	}
	if len(added) != 2 {
		t.Errorf("expected 2 appended, got %d", len(added))
	}
}

type fakeParser struct {
	entries []entity.StatementEntry
	err     error
}

func (f *fakeParser) Parse(_ context.Context, _ []byte) ([]entity.StatementEntry, error) {
	return f.entries, f.err
}

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

func (m *memLedger) Snapshot(_ context.Context) ([]byte, error) {
	return []byte("Data;Descrição\n"), nil
}

type memBlob struct {
	names []string
}

func (b *memBlob) Put(_ context.Context, name string, content []byte) (*adapter.BlobObject, error) {
	b.names = append(b.names, name)
	return &adapter.BlobObject{Location: "mem://" + name, Size: int64(len(content))}, nil
}

func statementEntries() []entity.StatementEntry {
	day := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	return []entity.StatementEntry{
		{SourceID: "A2", PostedAt: day, Amount: decimal.NewFromInt(-30), Payee: "UBER"},
		{SourceID: 3, PostedAt: day, Amount: decimal.NewFromInt(500), Payee: "PIX RECEBIDO"},
		{SourceID: "A4", PostedAt: day, Amount: decimal.NewFromInt(-12), Payee: "PADARIA"},
	}
}

func TestPreviewStatementUseCase(t *testing.T) {
	ledger := &memLedger{transactions: []*entity.Transaction{tx("A2")}}
	uc := NewPreviewStatementUseCase(&fakeParser{entries: statementEntries()}, newNormalizer(), ledger)

	out, err := uc.Execute(context.Background(), PreviewStatementInput{Content: []byte("ofx")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Transactions) != 3 || out.NewCount != 2 || out.DuplicateCount != 1 {
		t.Errorf("unexpected counts: %d transactions, %d new, %d duplicate", len(out.Transactions), out.NewCount, out.DuplicateCount)
	}
	if !out.Totals.Inflow.Equal(decimal.NewFromInt(500)) || !out.Totals.Outflow.Equal(decimal.NewFromInt(-42)) {
		t.Errorf("unexpected totals %+v", out.Totals)
	}
	if !out.Totals.Balance.Equal(decimal.NewFromInt(458)) {
		t.Errorf("unexpected balance %s", out.Totals.Balance)
	}
	if out.Unclassified != 1 {
		t.Errorf("expected 1 unclassified row, got %d", out.Unclassified)
	}
	if ledger.saves != 0 {
		t.Error("preview must not write the ledger")
	}
}

func TestPreviewStatementUseCase_ParserUnavailable(t *testing.T) {
	uc := NewPreviewStatementUseCase(nil, newNormalizer(), &memLedger{})

	out, err := uc.Execute(context.Background(), PreviewStatementInput{Content: []byte("ofx")})
	if err != nil {
		t.Fatalf("parser absence must degrade, got %v", err)
	}
	if len(out.Transactions) != 0 || !out.Report.Has(valueobject.WarningSourceUnavailable) {
		t.Errorf("expected empty result with warning, got %+v", out)
	}
}

func TestImportStatementUseCase(t *testing.T) {
	now := time.Date(2024, 6, 4, 9, 30, 5, 0, time.UTC)

	t.Run("only new with backup", func(t *testing.T) {
		ledger := &memLedger{transactions: []*entity.Transaction{tx("A1"), tx("A2")}}
		blob := &memBlob{}
		uc := NewImportStatementUseCase(&fakeParser{entries: statementEntries()}, newNormalizer(), ledger, ledger, blob).
			WithClock(func() time.Time { return now })

		out, err := uc.Execute(context.Background(), ImportStatementInput{Content: []byte("ofx"), Backup: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Added) != 2 || out.Skipped != 1 || !out.Written {
			t.Errorf("unexpected output %+v", out)
		}
		if !equalIDs(ids(ledger.transactions), []string{"A1", "A2", "3", "A4"}) {
			t.Errorf("unexpected ledger %v", ids(ledger.transactions))
		}
		if len(blob.names) != 1 || blob.names[0] != "backup_base_20240604_093005.csv" {
			t.Errorf("unexpected backups %v", blob.names)
		}
		if out.BackupLocation != "mem://backup_base_20240604_093005.csv" {
			t.Errorf("unexpected backup location %s", out.BackupLocation)
		}
	})

	t.Run("re-import adds nothing and does not write", func(t *testing.T) {
		ledger := &memLedger{}
		uc := NewImportStatementUseCase(&fakeParser{entries: statementEntries()}, newNormalizer(), ledger, nil, nil)

		if _, err := uc.Execute(context.Background(), ImportStatementInput{Content: []byte("ofx")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out, err := uc.Execute(context.Background(), ImportStatementInput{Content: []byte("ofx")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Added) != 0 || out.Written || ledger.saves != 1 {
			t.Errorf("expected no second write, got added=%d written=%v saves=%d", len(out.Added), out.Written, ledger.saves)
		}
	})

	t.Run("replace existing", func(t *testing.T) {
		ledger := &memLedger{transactions: []*entity.Transaction{tx("A2"), tx("Z9")}}
		uc := NewImportStatementUseCase(&fakeParser{entries: statementEntries()}, newNormalizer(), ledger, nil, nil)

		out, err := uc.Execute(context.Background(), ImportStatementInput{Content: []byte("ofx"), Mode: ImportModeReplaceExisting})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Replaced != 1 || len(out.Added) != 3 {
			t.Errorf("unexpected output %+v", out)
		}
		if !equalIDs(ids(ledger.transactions), []string{"Z9", "A2", "3", "A4"}) {
			t.Errorf("unexpected ledger %v", ids(ledger.transactions))
		}
	})

	t.Run("malformed file degrades", func(t *testing.T) {
		ledger := &memLedger{}
		parser := &fakeParser{err: domainerror.NewLedgerError(domainerror.ErrCodeMalformedRecord, "bad ofx", domainerror.ErrMalformedRecord)}
		uc := NewImportStatementUseCase(parser, newNormalizer(), ledger, nil, nil)

		out, err := uc.Execute(context.Background(), ImportStatementInput{Content: []byte("garbage")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Parsed != 0 || ledger.saves != 0 || !out.Report.Has(valueobject.WarningMalformedRecord) {
			t.Errorf("expected empty result with malformed warning, got %+v", out)
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		uc := NewImportStatementUseCase(&fakeParser{}, newNormalizer(), &memLedger{}, nil, nil)
		_, err := uc.Execute(context.Background(), ImportStatementInput{Content: []byte("ofx"), Mode: "append_all"})
		if !errors.Is(err, domainerror.ErrInvalidImportMode) {
			t.Errorf("expected ErrInvalidImportMode, got %v", err)
		}
	})

	t.Run("backup requested without storage", func(t *testing.T) {
		ledger := &memLedger{transactions: []*entity.Transaction{tx("A1")}}
		uc := NewImportStatementUseCase(&fakeParser{entries: statementEntries()}, newNormalizer(), ledger, nil, nil)
		_, err := uc.Execute(context.Background(), ImportStatementInput{Content: []byte("ofx"), Backup: true})
		if !errors.Is(err, domainerror.ErrSourceUnavailable) || ledger.saves != 0 {
			t.Errorf("expected import to stop before writing, got err=%v saves=%d", err, ledger.saves)
		}
	})
}
