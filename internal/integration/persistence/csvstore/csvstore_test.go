package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestDecodeTable_Encodings(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "utf-8", content: []byte(" Nome ;Cidade\nJoão;São Paulo\n")},
		{name: "utf-8 with bom", content: append([]byte("\xEF\xBB\xBF"), []byte("Nome;Cidade\nJoão;São Paulo\n")...)},
		{name: "windows-1252", content: []byte("Nome;Cidade\nJo\xe3o;S\xe3o Paulo\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := DecodeTable(tt.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !table.Has("Nome") || len(table.Rows) != 1 {
				t.Fatalf("unexpected table %+v", table)
			}
			if got := table.Get(table.Rows[0], "Cidade"); got != "São Paulo" {
				t.Errorf("expected São Paulo, got %q", got)
			}
		})
	}
}

func TestWriteTable_ReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "table.csv")

	if err := WriteTable(path, []string{"A", "B"}, [][]string{{"1", "x;y"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WriteTable(path, []string{"A", "B"}, [][]string{{"2", "z"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 1 || table.Get(table.Rows[0], "A") != "2" {
		t.Errorf("expected the second write only, got %+v", table.Rows)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestParseDate_DayFirst(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{in: "2024-03-05", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "05/03/2024", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "05/03/2024 14:30", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "31/02/2024"},
		{in: "ontem"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, err)
			}
			if tt.ok && !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFinanceStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFinanceStore(filepath.Join(t.TempDir(), "base_financeira.csv"))

	loaded, report, err := store.Load(ctx)
	if err != nil || len(loaded) != 0 || len(report.Warnings) != 0 {
		t.Fatalf("missing file should be an empty ledger, got %v %v %v", loaded, report, err)
	}

	tx := entity.NewTransaction("123", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("-150.5"), "UBER *TRIP", "")
	tx.ApplyClassification("Transporte", "Logística", "Operacional")
	legacy := entity.NewTransaction("", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(10), "legado", "")
	legacy.ReconciledReference = "NF-9"

	if err := store.Save(ctx, []*entity.Transaction{tx, legacy}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, _, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(loaded))
	}
	got := loaded[0]
	if got.ExternalID != "123" || !got.Amount.Equal(tx.Amount) || got.Type != entity.TransactionTypeExpense || got.CostCenter != "Logística" {
		t.Errorf("unexpected transaction %+v", got)
	}
	if loaded[1].ExternalID != "" || loaded[1].ReconciledReference != "NF-9" {
		t.Errorf("legacy row not preserved: %+v", loaded[1])
	}

	snapshot, err := store.Snapshot(ctx)
	if err != nil || len(snapshot) == 0 {
		t.Errorf("expected snapshot content, got %d bytes (%v)", len(snapshot), err)
	}
}

func TestFinanceStore_MalformedRows(t *testing.T) {
	path := writeFile(t, "base_financeira.csv", []byte(
		"Data;Descrição;Valor;Tipo;Categoria;Centro de Custo;Setor;ID Transação;Conciliado com\n"+
			"2024-07-01;PIX;100.00;Receita;Transferência;Financeiro;Administrativo;A1;\n"+
			"sem data;PIX;100.00;Receita;;;;A2;\n"+
			"2024-07-02;TED;abc;Despesa;;;;A3;\n"))

	loaded, report, err := NewFinanceStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 3 || report.MalformedRows != 2 || report.RowsRead != 3 {
		t.Errorf("expected 3 rows and 2 malformed, got %d rows, report %+v", len(loaded), report)
	}
	if report.Has(valueobject.WarningMissingColumn) {
		t.Errorf("a ledger without the memo column should not warn, got %v", report.Messages())
	}

	tests := []struct {
		name      string
		tx        *entity.Transaction
		malformed bool
		field     entity.TransactionField
		raw       string
	}{
		{"valid row", loaded[0], false, "", ""},
		{"unreadable date", loaded[1], true, entity.FieldDate, "sem data"},
		{"unreadable amount", loaded[2], true, entity.FieldAmount, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tx.IsMalformed() != tt.malformed {
				t.Errorf("expected malformed=%v, got %v", tt.malformed, tt.tx.IsMalformed())
			}
			if !tt.malformed {
				return
			}
			if raw, ok := tt.tx.RawText(tt.field); !ok || raw != tt.raw {
				t.Errorf("expected raw %s %q, got %q (%v)", tt.field, tt.raw, raw, ok)
			}
		})
	}
}

func TestFinanceStore_SaveKeepsMalformedRows(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, "base_financeira.csv", []byte(
		"Data;Descrição;Valor;Tipo;Categoria;Centro de Custo;Setor;ID Transação;Conciliado com\n"+
			"2024-07-01;PIX;100.00;Receita;Transferência;Financeiro;Administrativo;A1;\n"+
			"05/13/2024;LEGADO;50,00;Receita;;;;L1;\n"+
			";SEM DATA;-20.00;Despesa;;;;L2;\n"+
			"2024-07-03;VALOR RUIM;12,3,4;Despesa;;;;L3;\n"))
	store := NewFinanceStore(path)

	loaded, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded[0].ReconciledReference = "MIN-1"
	if err := store.Save(ctx, loaded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"05/13/2024;LEGADO", ";SEM DATA;-20.00", "VALOR RUIM;12,3,4", "A1;MIN-1"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("rewritten ledger lost %q:\n%s", want, content)
		}
	}

	reloaded, report, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reloaded) != 4 || report.MalformedRows != 3 {
		t.Errorf("expected 4 rows with 3 malformed after rewrite, got %d, report %+v", len(reloaded), report)
	}
}

func TestFinanceStore_PersistsMemo(t *testing.T) {
	ctx := context.Background()
	store := NewFinanceStore(filepath.Join(t.TempDir(), "base_financeira.csv"))

	tx := entity.NewTransaction("M1", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(-30), "PAGAMENTO", "UBER TRIP SP")
	if err := store.Save(ctx, []*entity.Transaction{tx}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Memo != "UBER TRIP SP" {
		t.Errorf("expected memo to survive a reload, got %+v", loaded)
	}
}

func TestShipmentStore_Load(t *testing.T) {
	path := writeFile(t, "base.csv", []byte(
		"Data de Emissão;Número;Nº Fatura;Pagador do Frete - Nome;Valor do Frete (R$);Notas Fiscais;Remetente - Nome;Remetente - Cidade;Destinatário - Nome;Destinatário - Cidade;Soma dos Volumes;Soma das Notas;Soma dos Pesos\n"+
			"05/03/2024;10450;F1;ACME;R$ 1.234,56;NF 1;Metalúrgica Sul;Curitiba;Casa Verde;Joinville;3;5.000,00;120,5\n"+
			"20/03/2024;10451;F1;;abc;;A;B;C;D;x;;\n"+
			"99/99/2024;10452;F2;Beta;10,00;;;;;;;;\n"))

	shipments, report, err := NewShipmentStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shipments) != 2 {
		t.Fatalf("expected 2 shipments, got %d", len(shipments))
	}

	first := shipments[0]
	if !first.FreightValue.Equal(decimal.RequireFromString("1234.56")) || first.VolumeCount != 3 {
		t.Errorf("unexpected first shipment %+v", first)
	}
	if first.PeriodBucket != "03/1ª" || !first.DueDate.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected period or due date: %s %v", first.PeriodBucket, first.DueDate)
	}
	if shipments[1].PeriodBucket != "03/2ª" || !shipments[1].FreightValue.IsZero() {
		t.Errorf("unexpected second shipment %+v", shipments[1])
	}
	if report.MalformedRows != 3 || !report.Has(valueobject.WarningMalformedRecord) {
		t.Errorf("expected 3 malformed rows, got %+v", report)
	}
}

func TestShipmentStore_MissingFreightColumn(t *testing.T) {
	path := writeFile(t, "base.csv", []byte("Data de Emissão;Número;Nº Fatura\n01/02/2024;1;F1\n"))

	shipments, report, err := NewShipmentStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shipments) != 1 || !shipments[0].FreightValue.IsZero() {
		t.Errorf("expected a zero freight shipment, got %+v", shipments)
	}
	if !report.Has(valueobject.WarningMissingColumn) {
		t.Error("expected a missing column warning")
	}
}

func TestShipmentStore_MissingFile(t *testing.T) {
	shipments, report, err := NewShipmentStore(filepath.Join(t.TempDir(), "none.csv")).Load(context.Background())
	if err != nil || len(shipments) != 0 || !report.Has(valueobject.WarningSourceUnavailable) {
		t.Errorf("expected empty ledger with warning, got %v %+v %v", shipments, report, err)
	}
}

func TestFreightColumn_Fallback(t *testing.T) {
	table := NewTable([]string{"Frete - Valor Total", "Outro"}, nil)
	col, ok := FreightColumn(table)
	if !ok || col != "Frete - Valor Total" {
		t.Errorf("expected fallback column, got %q %v", col, ok)
	}
}

func TestOperationalStores_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	pickups := NewPickupStore(filepath.Join(dir, "coletas.csv"))
	order := &entity.PickupOrder{
		Number:     1001,
		CreatedAt:  time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		PickupDate: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		Sender:     entity.PickupParty{Name: "A", Address: "Rua 1", City: "Curitiba", Phone: "1"},
		Receiver:   entity.PickupParty{Name: "B", Address: "Rua 2", City: "Joinville", Phone: "2"},
		GoodsType:  entity.GoodsTypeFood,
		Volumes:    2,
		WeightKg:   decimal.RequireFromString("12.5"),
		GoodsValue: decimal.NewFromInt(300),
		Urgent:     true,
		Status:     entity.PickupStatusScheduled,
	}
	if err := pickups.SaveAll(ctx, []*entity.PickupOrder{order}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loadedOrders, _, err := pickups.List(ctx)
	if err != nil || len(loadedOrders) != 1 {
		t.Fatalf("unexpected pickups %v %v", loadedOrders, err)
	}
	if got := loadedOrders[0]; got.Number != 1001 || !got.Urgent || got.Receiver.City != "Joinville" || !got.WeightKg.Equal(order.WeightKg) {
		t.Errorf("unexpected pickup %+v", got)
	}

	contacts := NewContactStore(filepath.Join(dir, "contatos.csv"))
	c := entity.NewContact("Transportadora Silva", "41 3333-0000", "", "Curitiba", "")
	if err := contacts.SaveAll(ctx, []*entity.Contact{c}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loadedContacts, _, err := contacts.List(ctx)
	if err != nil || len(loadedContacts) != 1 || loadedContacts[0].ID != c.ID {
		t.Errorf("unexpected contacts %+v %v", loadedContacts, err)
	}

	quotes := NewQuoteStore(filepath.Join(dir, "cotacoes.csv"))
	q := entity.NewFreightQuote(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), "ACME", "A", "B",
		decimal.NewFromInt(100), decimal.NewFromInt(10), "Normal", 3, decimal.RequireFromString("251.50"), "")
	if err := quotes.SaveAll(ctx, []*entity.FreightQuote{q}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loadedQuotes, _, err := quotes.List(ctx)
	if err != nil || len(loadedQuotes) != 1 {
		t.Fatalf("unexpected quotes %v %v", loadedQuotes, err)
	}
	if got := loadedQuotes[0]; got.ID != q.ID || !got.Value.Equal(q.Value) || got.Status != entity.QuoteStatusPending || !got.CreatedAt.Equal(q.CreatedAt) {
		t.Errorf("unexpected quote %+v", got)
	}
}

func TestContactStore_StableIDsWithoutIDColumn(t *testing.T) {
	path := writeFile(t, "contatos.csv", []byte("Nome;Número;Email;Cidade;Observação\nAna;1;;Curitiba;\n"))
	store := NewContactStore(path)

	first, _, _ := store.List(context.Background())
	second, _, _ := store.List(context.Background())
	if first[0].ID != second[0].ID {
		t.Error("derived contact id should be stable across loads")
	}
}

func TestContactStore_KeepsLegacyIDs(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, "contatos.csv", []byte(
		"ID;Nome;Número;Email;Cidade;Observação\n"+
			"c-1;João da Silva;11 99999-0000;joao@example.com;SAO PAULO;Motorista\n"+
			"c-2;Transportadora Beta;41 3333-0000;;CURITIBA;\n"))
	store := NewContactStore(path)

	contacts, _, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 2 || contacts[0].ID != "c-1" || contacts[1].ID != "c-2" {
		t.Fatalf("legacy ids should be kept, got %+v", contacts)
	}

	contacts = append(contacts, entity.NewContact("Maria Souza", "21 97777-0000", "", "RIO DE JANEIRO", ""))
	if err := store.SaveAll(ctx, contacts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reloaded, _, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reloaded) != 3 || reloaded[1].ID != "c-2" || reloaded[2].ID != contacts[2].ID {
		t.Errorf("ids changed after a save: %+v", reloaded)
	}
}
