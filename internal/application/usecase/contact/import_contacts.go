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

// ImportMode selects how an imported file is combined with the address book.
type ImportMode string

const (
	// ImportModeOnlyNew appends the rows whose name and phone are not in the book yet.
	ImportModeOnlyNew ImportMode = "only_new"
	// ImportModeReplace overwrites the address book with the file.
	ImportModeReplace ImportMode = "replace"
)

// Address book fields an import file can be mapped onto.
const (
	FieldName  = "Nome"
	FieldPhone = "Número"
	FieldEmail = "Email"
	FieldCity  = "Cidade"
	FieldNote  = "Observação"
)

// ImportFields lists the mappable fields in file order.
var ImportFields = []string{FieldName, FieldPhone, FieldEmail, FieldCity, FieldNote}

// ImportContactsInput represents an uploaded contact file.
// Columns maps a field to the file column holding it. Unmapped fields default to the
// column with the same label; an empty value leaves the field blank.
type ImportContactsInput struct {
	Session entity.Session
	Content []byte
	Mode    ImportMode // Optional, defaults to ImportModeOnlyNew
	Columns map[string]string
}

// ImportContactsOutput reports what the import did.
type ImportContactsOutput struct {
	Mode       ImportMode
	Read       int
	Added      int
	Duplicates int
	Incomplete int // Rows without name or phone
	Total      int
	Written    bool
}

// ImportContactsUseCase loads contacts from a delimited file.
type ImportContactsUseCase struct {
	contacts adapter.ContactRepository
	decoder  adapter.TableDecoder
}

// NewImportContactsUseCase creates a new ImportContactsUseCase instance.
func NewImportContactsUseCase(contacts adapter.ContactRepository, decoder adapter.TableDecoder) *ImportContactsUseCase {
	return &ImportContactsUseCase{contacts: contacts, decoder: decoder}
}

// Execute maps the file columns, drops rows without name or phone and duplicates on
// name and phone (the first row wins), then appends or replaces.
func (uc *ImportContactsUseCase) Execute(ctx context.Context, input ImportContactsInput) (*ImportContactsOutput, error) {
	mode := input.Mode
	if mode == "" {
		mode = ImportModeOnlyNew
	}
	if mode != ImportModeOnlyNew && mode != ImportModeReplace {
		return nil, domainerror.NewOperationsError(
			domainerror.ErrCodeContactImportMode,
			"import mode must be only_new or replace",
			domainerror.ErrInvalidContactImportMode,
		)
	}

	header, rows, err := uc.decoder.Decode(input.Content)
	if err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeMalformedRecord,
			"unreadable contact file",
			fmt.Errorf("%w: %w", domainerror.ErrMalformedRecord, err),
		)
	}

	positions, err := resolveColumns(header, input.Columns)
	if err != nil {
		return nil, err
	}

	existing, _, err := uc.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	seen := make(map[string]bool)
	if mode == ImportModeOnlyNew {
		for _, c := range existing {
			seen[contactKey(c)] = true
		}
	}

	out := &ImportContactsOutput{Mode: mode, Read: len(rows)}
	imported := make([]*entity.Contact, 0, len(rows))
	for _, row := range rows {
		cell := func(field string) string {
			if i, ok := positions[field]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}
		c := entity.NewContact(cell(FieldName), cell(FieldPhone), cell(FieldEmail), cell(FieldCity), strings.TrimSpace(cell(FieldNote)))
		if c.Name == "" || c.Phone == "" {
			out.Incomplete++
			continue
		}
		key := contactKey(c)
		if seen[key] {
			out.Duplicates++
			continue
		}
		seen[key] = true
		imported = append(imported, c)
	}
	out.Added = len(imported)

	final := imported
	if mode == ImportModeOnlyNew {
		final = append(existing, imported...)
	}
	out.Total = len(final)

	if mode == ImportModeOnlyNew && len(imported) == 0 {
		return out, nil
	}
	if err := uc.contacts.SaveAll(ctx, final); err != nil {
		return nil, writeFailed(err)
	}
	out.Written = true

	slog.Info("Contacts imported",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"mode", mode,
		"read", out.Read,
		"added", out.Added,
		"duplicates", out.Duplicates,
		"incomplete", out.Incomplete,
	)
	return out, nil
}

// resolveColumns returns the file position of each mapped field. Name and phone must
// resolve; an explicit mapping must name a column of the file.
func resolveColumns(header []string, mapping map[string]string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, label := range header {
		if _, dup := index[label]; !dup {
			index[label] = i
		}
	}

	positions := make(map[string]int, len(ImportFields))
	for _, field := range ImportFields {
		source, mapped := mapping[field]
		if !mapped {
			source = field
		}
		source = strings.TrimSpace(source)
		if source == "" {
			continue
		}
		i, ok := index[source]
		if !ok {
			if mapped {
				return nil, importColumnsError(fmt.Sprintf("column %q mapped to %s is not in the file", source, field))
			}
			continue
		}
		positions[field] = i
	}

	for _, field := range []string{FieldName, FieldPhone} {
		if _, ok := positions[field]; !ok {
			return nil, importColumnsError("the file has no column for " + field)
		}
	}
	return positions, nil
}

func importColumnsError(message string) error {
	return domainerror.NewOperationsError(
		domainerror.ErrCodeContactImportColumns,
		message,
		domainerror.ErrContactImportColumns,
	)
}

func contactKey(c *entity.Contact) string {
	return c.Name + "|" + c.Phone
}
