// Package error defines domain-specific errors for the freight back-office.
package error

import "errors"

// Ledger load and persistence errors.
var (
	// ErrSourceUnavailable is returned when an optional dependency (statement parser,
	// document extractor, database, blob storage) is missing or unreachable.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedRecord is returned when a row fails type coercion.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMissingColumn is returned when an expected column is absent from a table.
	ErrMissingColumn = errors.New("missing column")

	// ErrLedgerWriteFailed is returned when a ledger rewrite fails.
	ErrLedgerWriteFailed = errors.New("ledger write failed")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Recoverable conditions (01XXXX)
	ErrCodeSourceUnavailable LedgerErrorCode = "LDG-010001"
	ErrCodeMalformedRecord   LedgerErrorCode = "LDG-010002"
	ErrCodeMissingColumn     LedgerErrorCode = "LDG-010003"

	// Persistence errors (02XXXX)
	ErrCodeLedgerWriteFailed LedgerErrorCode = "LDG-020001"
	ErrCodeLedgerReadFailed  LedgerErrorCode = "LDG-020002"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsRecoverable reports whether err belongs to the recoverable part of the taxonomy.
// Recoverable errors degrade to an empty or partial result plus a warning.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) ||
		errors.Is(err, ErrMalformedRecord) ||
		errors.Is(err, ErrMissingColumn)
}
