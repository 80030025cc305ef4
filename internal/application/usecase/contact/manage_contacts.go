package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
)

// ContactInput carries the editable fields of a contact.
type ContactInput struct {
	Session entity.Session
	Name    string
	Phone   string
	Email   string
	City    string
	Note    string
}

func (in ContactInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		return domainerror.NewOperationsError(
			domainerror.ErrCodeContactMissingFields,
			"contact name and phone are required",
			domainerror.ErrContactMissingFields,
		)
	}
	return nil
}

func writeFailed(err error) error {
	return domainerror.NewLedgerError(
		domainerror.ErrCodeLedgerWriteFailed,
		"failed to save contacts",
		fmt.Errorf("%w: %w", domainerror.ErrLedgerWriteFailed, err),
	)
}

func notFound(id string) error {
	return domainerror.NewOperationsError(
		domainerror.ErrCodeContactNotFound,
		"contact "+id+" not found",
		domainerror.ErrContactNotFound,
	)
}

// CreateContactUseCase adds a contact to the address book.
type CreateContactUseCase struct {
	contacts adapter.ContactRepository
}

// NewCreateContactUseCase creates a new CreateContactUseCase instance.
func NewCreateContactUseCase(contacts adapter.ContactRepository) *CreateContactUseCase {
	return &CreateContactUseCase{contacts: contacts}
}

// Execute validates and appends the contact.
func (uc *CreateContactUseCase) Execute(ctx context.Context, input ContactInput) (*entity.Contact, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	contacts, _, err := uc.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	created := entity.NewContact(input.Name, input.Phone, input.Email, input.City, input.Note)
	if err := uc.contacts.SaveAll(ctx, append(contacts, created)); err != nil {
		return nil, writeFailed(err)
	}

	slog.Info("Contact created",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"contact_id", created.ID,
	)
	return created, nil
}

// UpdateContactUseCase replaces the fields of an existing contact.
type UpdateContactUseCase struct {
	contacts adapter.ContactRepository
}

// NewUpdateContactUseCase creates a new UpdateContactUseCase instance.
func NewUpdateContactUseCase(contacts adapter.ContactRepository) *UpdateContactUseCase {
	return &UpdateContactUseCase{contacts: contacts}
}

// Execute overwrites the contact identified by id.
func (uc *UpdateContactUseCase) Execute(ctx context.Context, id string, input ContactInput) (*entity.Contact, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	contacts, _, err := uc.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	idx, ok := findContact(contacts, id)
	if !ok {
		return nil, notFound(id)
	}

	updated := entity.NewContact(input.Name, input.Phone, input.Email, input.City, input.Note)
	updated.ID = contacts[idx].ID
	contacts[idx] = updated

	if err := uc.contacts.SaveAll(ctx, contacts); err != nil {
		return nil, writeFailed(err)
	}

	slog.Info("Contact updated",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"contact_id", id,
	)
	return updated, nil
}

// DeleteContactUseCase removes a contact.
type DeleteContactUseCase struct {
	contacts adapter.ContactRepository
}

// NewDeleteContactUseCase creates a new DeleteContactUseCase instance.
func NewDeleteContactUseCase(contacts adapter.ContactRepository) *DeleteContactUseCase {
	return &DeleteContactUseCase{contacts: contacts}
}

// Execute deletes the contact identified by id.
func (uc *DeleteContactUseCase) Execute(ctx context.Context, session entity.Session, id string) error {
	contacts, _, err := uc.contacts.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}

	idx, ok := findContact(contacts, id)
	if !ok {
		return notFound(id)
	}

	remaining := append(contacts[:idx:idx], contacts[idx+1:]...)
	if err := uc.contacts.SaveAll(ctx, remaining); err != nil {
		return writeFailed(err)
	}

	slog.Info("Contact deleted",
		"operator", session.Operator,
		"request_id", session.RequestID,
		"contact_id", id,
	)
	return nil
}
