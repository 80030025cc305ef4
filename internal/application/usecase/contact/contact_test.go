package contact

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

type memContacts struct {
	contacts []*entity.Contact
	saves    int
}

func (m *memContacts) List(_ context.Context) ([]*entity.Contact, *valueobject.LoadReport, error) {
	return m.contacts, valueobject.NewLoadReport(), nil
}

func (m *memContacts) SaveAll(_ context.Context, contacts []*entity.Contact) error {
	m.saves++
	m.contacts = contacts
	return nil
}

func book() *memContacts {
	return &memContacts{contacts: []*entity.Contact{
		entity.NewContact("Transportadora Silva", "41 3333-0000", "silva@example.com", "Curitiba", ""),
		entity.NewContact("Mercado Central", "47 3222-1111", "", "Joinville", "entrega só de manhã"),
		entity.NewContact("Metalúrgica Sul", "41 3030-3030", "sul@example.com", "Curitiba", ""),
	}}
}

func TestListContactsUseCase(t *testing.T) {
	uc := NewListContactsUseCase(book())

	tests := []struct {
		name  string
		input ListContactsInput
		want  int
	}{
		{name: "all", input: ListContactsInput{}, want: 3},
		{name: "name substring case insensitive", input: ListContactsInput{Name: "silva"}, want: 1},
		{name: "city", input: ListContactsInput{City: "Curitiba"}, want: 2},
		{name: "complete only", input: ListContactsInput{CompleteOnly: true}, want: 2},
		{name: "combined", input: ListContactsInput{City: "Joinville", CompleteOnly: true}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out.Contacts) != tt.want {
				t.Errorf("expected %d contacts, got %d", tt.want, len(out.Contacts))
			}
		})
	}
}

func TestCreateContactUseCase(t *testing.T) {
	repo := book()
	uc := NewCreateContactUseCase(repo)

	created, err := uc.Execute(context.Background(), ContactInput{Name: "  Agro Norte ", Phone: "44 9999-0000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "Agro Norte" || len(repo.contacts) != 4 {
		t.Errorf("unexpected result %+v (%d contacts)", created, len(repo.contacts))
	}

	_, err = uc.Execute(context.Background(), ContactInput{Name: "Sem telefone"})
	if !errors.Is(err, domainerror.ErrContactMissingFields) {
		t.Errorf("expected ErrContactMissingFields, got %v", err)
	}
}

func TestUpdateAndDeleteContactUseCase(t *testing.T) {
	repo := book()
	id := repo.contacts[1].ID

	updated, err := NewUpdateContactUseCase(repo).Execute(context.Background(), id, ContactInput{
		Name: "Mercado Central", Phone: "47 3222-1111", Email: "compras@mercado.example", City: "Joinville",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != id || repo.contacts[1].Email != "compras@mercado.example" {
		t.Errorf("update did not keep id or persist email: %+v", repo.contacts[1])
	}

	if err := NewDeleteContactUseCase(repo).Execute(context.Background(), entity.Session{}, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.contacts) != 2 || repo.contacts[1].Name != "Metalúrgica Sul" {
		t.Errorf("unexpected contacts after delete: %+v", repo.contacts)
	}

	err = NewDeleteContactUseCase(repo).Execute(context.Background(), entity.Session{}, id)
	if !errors.Is(err, domainerror.ErrContactNotFound) {
		t.Errorf("expected ErrContactNotFound, got %v", err)
	}
}

func TestLookupContactUseCase(t *testing.T) {
	uc := NewLookupContactUseCase(book())

	tests := []struct {
		name      string
		query     string
		want      string
		matchType string
	}{
		{name: "exact ignoring case", query: "MERCADO CENTRAL", want: "Mercado Central", matchType: "exact"},
		{name: "typo", query: "transportadora silv", want: "Transportadora Silva", matchType: "fuzzy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Contact.Name != tt.want || out.MatchType != tt.matchType {
				t.Errorf("expected %s (%s), got %s (%s)", tt.want, tt.matchType, out.Contact.Name, out.MatchType)
			}
		})
	}

	if _, err := uc.Execute(context.Background(), " "); !errors.Is(err, domainerror.ErrContactNotFound) {
		t.Errorf("expected ErrContactNotFound for blank name, got %v", err)
	}
}

// splitDecoder reads ";" separated lines, the first one being the header.
type splitDecoder struct{}

func (splitDecoder) Decode(content []byte) ([]string, [][]string, error) {
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, strings.Split(line, ";"))
	}
	return strings.Split(lines[0], ";"), rows, nil
}

func TestImportContactsUseCase(t *testing.T) {
	file := "Nome;Número;Email;Cidade\n" +
		"Transportadora Silva;41 3333-0000;;Curitiba\n" +
		"Laticínios Norte;44 3000-1000;norte@example.com;Maringá\n" +
		"Laticínios Norte;44 3000-1000;outro@example.com;Maringá\n" +
		";47 0000-0000;;Blumenau\n" +
		"Silva Filho;41 3333-0000;;Curitiba\n"

	tests := []struct {
		name           string
		input          ImportContactsInput
		wantAdded      int
		wantDuplicates int
		wantIncomplete int
		wantTotal      int
		wantWritten    bool
	}{
		{
			name:           "only new skips the book and repeated rows",
			input:          ImportContactsInput{Content: []byte(file)},
			wantAdded:      2,
			wantDuplicates: 2,
			wantIncomplete: 1,
			wantTotal:      5,
			wantWritten:    true,
		},
		{
			name:           "replace keeps the first of each name and phone",
			input:          ImportContactsInput{Content: []byte(file), Mode: ImportModeReplace},
			wantAdded:      3,
			wantDuplicates: 1,
			wantIncomplete: 1,
			wantTotal:      3,
			wantWritten:    true,
		},
		{
			name:           "nothing new leaves the book untouched",
			input:          ImportContactsInput{Content: []byte("Nome;Número\nMercado Central;47 3222-1111\n")},
			wantDuplicates: 1,
			wantTotal:      3,
		},
		{
			name: "mapped columns",
			input: ImportContactsInput{
				Content: []byte("Cliente;Fone;Cidade\nArmazém Leste;11 4000-0000;Santos\n"),
				Columns: map[string]string{FieldName: "Cliente", FieldPhone: "Fone", FieldCity: ""},
			},
			wantAdded:   1,
			wantTotal:   4,
			wantWritten: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := book()
			out, err := NewImportContactsUseCase(repo, splitDecoder{}).Execute(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Added != tt.wantAdded || out.Duplicates != tt.wantDuplicates || out.Incomplete != tt.wantIncomplete {
				t.Errorf("expected added/duplicates/incomplete %d/%d/%d, got %d/%d/%d",
					tt.wantAdded, tt.wantDuplicates, tt.wantIncomplete, out.Added, out.Duplicates, out.Incomplete)
			}
			if out.Total != tt.wantTotal || out.Written != tt.wantWritten {
				t.Errorf("expected total %d written %v, got %d %v", tt.wantTotal, tt.wantWritten, out.Total, out.Written)
			}
			wantSaves := 0
			if tt.wantWritten {
				wantSaves = 1
			}
			if repo.saves != wantSaves {
				t.Errorf("expected %d saves, got %d", wantSaves, repo.saves)
			}
			if len(repo.contacts) != tt.wantTotal {
				t.Errorf("expected %d contacts in the book, got %d", tt.wantTotal, len(repo.contacts))
			}
		})
	}
}

func TestImportContactsUseCase_ReplaceDropsOldContacts(t *testing.T) {
	repo := book()
	_, err := NewImportContactsUseCase(repo, splitDecoder{}).Execute(context.Background(), ImportContactsInput{
		Content: []byte("Nome;Número\nArmazém Leste;11 4000-0000\n"),
		Mode:    ImportModeReplace,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.contacts) != 1 || repo.contacts[0].Name != "Armazém Leste" {
		t.Fatalf("expected only the imported contact, got %+v", repo.contacts)
	}
	if repo.contacts[0].City != "" {
		t.Errorf("expected empty city, got %q", repo.contacts[0].City)
	}
}

func TestImportContactsUseCase_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    ImportContactsInput
		wantCode domainerror.OperationsErrorCode
	}{
		{
			name:     "unknown mode",
			input:    ImportContactsInput{Content: []byte("Nome;Número\nA;1\n"), Mode: "merge"},
			wantCode: domainerror.ErrCodeContactImportMode,
		},
		{
			name:     "no phone column",
			input:    ImportContactsInput{Content: []byte("Nome;Cidade\nA;Santos\n")},
			wantCode: domainerror.ErrCodeContactImportColumns,
		},
		{
			name: "mapping to an absent column",
			input: ImportContactsInput{
				Content: []byte("Nome;Número\nA;1\n"),
				Columns: map[string]string{FieldEmail: "E-mail"},
			},
			wantCode: domainerror.ErrCodeContactImportColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := book()
			_, err := NewImportContactsUseCase(repo, splitDecoder{}).Execute(context.Background(), tt.input)
			var opErr *domainerror.OperationsError
			if !errors.As(err, &opErr) || opErr.Code != tt.wantCode {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
			if repo.saves != 0 {
				t.Errorf("expected no save, got %d", repo.saves)
			}
		})
	}
}
