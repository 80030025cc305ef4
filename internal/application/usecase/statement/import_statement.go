package statement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ImportMode selects how a statement is combined with the ledger.
type ImportMode string

const (
	// ImportModeOnlyNew appends only transactions whose id is not yet in the ledger.
	ImportModeOnlyNew ImportMode = "only_new"
	// ImportModeReplaceExisting overwrites ledger rows that share an id with the statement.
	ImportModeReplaceExisting ImportMode = "replace_existing"
)

// IsValid checks if the import mode is recognized.
func (m ImportMode) IsValid() bool {
	return m == ImportModeOnlyNew || m == ImportModeReplaceExisting
}

// Snapshotter returns the serialized current contents of a ledger for backups.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]byte, error)
}

// ImportStatementInput represents the input for importing a statement file.
type ImportStatementInput struct {
	Session entity.Session
	Content []byte
	Mode    ImportMode // Optional, defaults to ImportModeOnlyNew
	Backup  bool
}

// ImportStatementOutput represents the result of an import.
type ImportStatementOutput struct {
	Parsed         int
	Added          []*entity.Transaction
	Skipped        int
	Replaced       int
	Written        bool
	BackupLocation string
	Report         *valueobject.LoadReport
}

// ImportStatementUseCase parses a statement, merges it into the ledger and rewrites the ledger.
type ImportStatementUseCase struct {
	parser      adapter.StatementParser
	normalizer  *Normalizer
	ledger      adapter.TransactionLedger
	snapshotter Snapshotter
	backups     adapter.BlobStorage
	now         func() time.Time
}

// NewImportStatementUseCase creates a new ImportStatementUseCase instance.
// snapshotter and backups may be nil, which disables backups.
func NewImportStatementUseCase(
	parser adapter.StatementParser,
	normalizer *Normalizer,
	ledger adapter.TransactionLedger,
	snapshotter Snapshotter,
	backups adapter.BlobStorage,
) *ImportStatementUseCase {
	return &ImportStatementUseCase{
		parser:      parser,
		normalizer:  normalizer,
		ledger:      ledger,
		snapshotter: snapshotter,
		backups:     backups,
		now:         time.Now,
	}
}

// WithClock replaces the time source used to name backups.
func (uc *ImportStatementUseCase) WithClock(now func() time.Time) *ImportStatementUseCase {
	uc.now = now
	return uc
}

// Execute performs the import. When no transaction survives, the ledger is not written.
func (uc *ImportStatementUseCase) Execute(ctx context.Context, input ImportStatementInput) (*ImportStatementOutput, error) {
	if len(input.Content) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyStatement,
			"statement file is empty",
			domainerror.ErrEmptyStatement,
		)
	}

	mode := input.Mode
	if mode == "" {
		mode = ImportModeOnlyNew
	}
	if !mode.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidImportMode,
			"import mode must be only_new or replace_existing",
			domainerror.ErrInvalidImportMode,
		)
	}

	incoming, report := parseAndNormalize(ctx, uc.parser, uc.normalizer, input.Content)
	output := &ImportStatementOutput{
		Parsed: len(incoming),
		Added:  []*entity.Transaction{},
		Report: report,
	}
	if len(incoming) == 0 {
		return output, nil
	}

	ledger, ledgerReport, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	report.Merge(ledgerReport)

	var merged, added []*entity.Transaction
	switch mode {
	case ImportModeReplaceExisting:
		merged, added, output.Replaced = ReplaceTransactions(ledger, incoming)
	default:
		merged, added = MergeTransactions(ledger, incoming)
	}
	output.Added = added
	output.Skipped = len(incoming) - len(added)

	if len(added) == 0 {
		slog.Info("Statement import added no transactions",
			"operator", input.Session.Operator,
			"request_id", input.Session.RequestID,
			"parsed", len(incoming),
		)
		return output, nil
	}

	if input.Backup && len(ledger) > 0 {
		location, err := uc.backup(ctx)
		if err != nil {
			return nil, err
		}
		output.BackupLocation = location
	}

	if err := uc.ledger.Save(ctx, merged); err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerWriteFailed,
			"failed to save ledger",
			errors.Join(domainerror.ErrLedgerWriteFailed, err),
		)
	}
	output.Written = true

	slog.Info("Statement imported",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"mode", mode,
		"parsed", len(incoming),
		"added", len(added),
		"replaced", output.Replaced,
	)

	return output, nil
}

func (uc *ImportStatementUseCase) backup(ctx context.Context) (string, error) {
	if uc.snapshotter == nil || uc.backups == nil {
		return "", domainerror.NewLedgerError(
			domainerror.ErrCodeSourceUnavailable,
			"backup storage is not configured",
			domainerror.ErrSourceUnavailable,
		)
	}

	content, err := uc.snapshotter.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to snapshot ledger: %w", err)
	}

	name := BackupName(uc.now())
	object, err := uc.backups.Put(ctx, name, content)
	if err != nil {
		return "", domainerror.NewLedgerError(
			domainerror.ErrCodeSourceUnavailable,
			"failed to store ledger backup",
			errors.Join(domainerror.ErrSourceUnavailable, err),
		)
	}
	return object.Location, nil
}

// BackupName returns the object name of a ledger backup taken at t.
func BackupName(t time.Time) string {
	return "backup_base_" + t.Format("20060102_150405") + ".csv"
}

func isMalformed(err error) bool {
	return errors.Is(err, domainerror.ErrMalformedRecord)
}
