// Package contact contains address book use cases.
package contact

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ListContactsInput filters the address book. Empty fields do not filter.
type ListContactsInput struct {
	Session      entity.Session
	Name         string
	City         string
	CompleteOnly bool
}

// ListContactsOutput represents the filtered contacts.
type ListContactsOutput struct {
	Contacts []*entity.Contact
	Report   *valueobject.LoadReport
}

// ListContactsUseCase lists the address book.
type ListContactsUseCase struct {
	contacts adapter.ContactRepository
}

// NewListContactsUseCase creates a new ListContactsUseCase instance.
func NewListContactsUseCase(contacts adapter.ContactRepository) *ListContactsUseCase {
	return &ListContactsUseCase{contacts: contacts}
}

// Execute filters by case-insensitive name substring, exact city and completeness.
func (uc *ListContactsUseCase) Execute(ctx context.Context, input ListContactsInput) (*ListContactsOutput, error) {
	contacts, report, err := uc.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	fold := cases.Fold()
	name := fold.String(strings.TrimSpace(input.Name))
	city := strings.TrimSpace(input.City)

	out := make([]*entity.Contact, 0, len(contacts))
	for _, c := range contacts {
		if name != "" && !strings.Contains(fold.String(c.Name), name) {
			continue
		}
		if city != "" && c.City != city {
			continue
		}
		if input.CompleteOnly && !c.IsComplete() {
			continue
		}
		out = append(out, c)
	}

	return &ListContactsOutput{Contacts: out, Report: report}, nil
}

func findContact(contacts []*entity.Contact, id string) (int, bool) {
	for i, c := range contacts {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}
