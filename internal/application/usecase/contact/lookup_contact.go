package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/cases"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
)

// LookupContactOutput is the best match for a name and how it was found.
type LookupContactOutput struct {
	Contact   *entity.Contact
	MatchType string // "exact" or "fuzzy"
}

// LookupContactUseCase finds the contact whose name is closest to a typed name.
type LookupContactUseCase struct {
	contacts adapter.ContactRepository
}

// NewLookupContactUseCase creates a new LookupContactUseCase instance.
func NewLookupContactUseCase(contacts adapter.ContactRepository) *LookupContactUseCase {
	return &LookupContactUseCase{contacts: contacts}
}

// Execute tries a case-insensitive exact match first, then closestmatch over the folded names.
func (uc *LookupContactUseCase) Execute(ctx context.Context, name string) (*LookupContactOutput, error) {
	contacts, _, err := uc.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	fold := cases.Fold()
	key := fold.String(strings.TrimSpace(name))
	if key == "" || len(contacts) == 0 {
		return nil, notFound(name)
	}

	byKey := make(map[string]*entity.Contact, len(contacts))
	keys := make([]string, 0, len(contacts))
	for _, c := range contacts {
		k := fold.String(c.Name)
		if _, seen := byKey[k]; seen {
			continue
		}
		byKey[k] = c
		keys = append(keys, k)
	}

	if c, ok := byKey[key]; ok {
		return &LookupContactOutput{Contact: c, MatchType: "exact"}, nil
	}

	cm := closestmatch.New(keys, []int{2, 3})
	if match := cm.Closest(key); match != "" {
		if c, ok := byKey[match]; ok {
			return &LookupContactOutput{Contact: c, MatchType: "fuzzy"}, nil
		}
	}

	return nil, domainerror.NewOperationsError(
		domainerror.ErrCodeContactNotFound,
		"no contact resembles "+name,
		domainerror.ErrContactNotFound,
	)
}
