package csvstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ContactHeader is the column set of the address book.
var ContactHeader = []string{"ID", "Nome", "Número", "Email", "Cidade", "Observação"}

// ContactStore implements adapter.ContactRepository.
type ContactStore struct {
	path string
}

// NewContactStore creates a new ContactStore.
func NewContactStore(path string) *ContactStore {
	return &ContactStore{path: path}
}

// List reads the address book. Rows without an ID get one derived from their position,
// name and phone, so it stays stable until the next save persists it.
func (s *ContactStore) List(_ context.Context) ([]*entity.Contact, *valueobject.LoadReport, error) {
	report := valueobject.NewLoadReport()

	table, err := ReadTable(s.path)
	if err != nil {
		if IsMissing(err) {
			return []*entity.Contact{}, report, nil
		}
		return nil, nil, domainerror.NewLedgerError(domainerror.ErrCodeLedgerReadFailed, "failed to read contacts", err)
	}
	if !table.Has("Nome") {
		report.MissingColumn("Nome")
	}

	contacts := make([]*entity.Contact, 0, len(table.Rows))
	for i, row := range table.Rows {
		report.RowsRead++
		c := entity.NewContact(
			table.Get(row, "Nome"),
			table.Get(row, "Número"),
			table.Get(row, "Email"),
			table.Get(row, "Cidade"),
			table.Get(row, "Observação"),
		)
		if id := table.Get(row, "ID"); id != "" {
			c.ID = id
		} else {
			c.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d|%s|%s", i, c.Name, c.Phone))).String()
		}
		contacts = append(contacts, c)
	}
	return contacts, report, nil
}

// SaveAll replaces the address book.
func (s *ContactStore) SaveAll(_ context.Context, contacts []*entity.Contact) error {
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{c.ID, c.Name, c.Phone, c.Email, c.City, c.Note})
	}
	if err := WriteTable(s.path, ContactHeader, rows); err != nil {
		return fmt.Errorf("failed to write contacts: %w", err)
	}
	return nil
}
