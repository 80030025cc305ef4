package entity

import (
	"strings"

	"github.com/google/uuid"
)

// Contact represents an entry of the company address book.
// ID is kept as stored, so address books written by earlier tools keep their keys.
type Contact struct {
	ID    string
	Name  string
	Phone string
	Email string
	City  string
	Note  string
}

// NewContact creates a new Contact with a fresh identifier.
func NewContact(name, phone, email, city, note string) *Contact {
	return &Contact{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
		City:  strings.TrimSpace(city),
		Note:  note,
	}
}

// IsComplete reports whether every descriptive field is filled.
func (c *Contact) IsComplete() bool {
	return c.Name != "" && c.Phone != "" && c.Email != "" && c.City != ""
}
