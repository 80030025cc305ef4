package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when no ledger transaction has the given external id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionAlreadyReconciled is returned when a transaction already carries a reference.
	ErrTransactionAlreadyReconciled = errors.New("transaction already reconciled")

	// ErrEmptyReference is returned when a manual link is attempted with a blank reference.
	ErrEmptyReference = errors.New("reconciliation reference cannot be empty")

	// ErrMissingExternalID is returned when a transaction has no external id.
	ErrMissingExternalID = errors.New("external transaction id is required")

	// ErrEmptyStatement is returned when an uploaded statement carries no file content.
	ErrEmptyStatement = errors.New("statement file is empty")

	// ErrInvalidImportMode is returned when the import mode is not recognized.
	ErrInvalidImportMode = errors.New("invalid import mode")

	// ErrEmptyClassification is returned when a classification update sets no field.
	ErrEmptyClassification = errors.New("classification update is empty")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010001"
	ErrCodeAlreadyReconciled        TransactionErrorCode = "TXN-010002"
	ErrCodeEmptyReference           TransactionErrorCode = "TXN-010003"
	ErrCodeMissingExternalID        TransactionErrorCode = "TXN-010004"
	ErrCodeEmptyStatement           TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidImportMode        TransactionErrorCode = "TXN-010006"
	ErrCodeEmptyClassification      TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidTransactionFilter TransactionErrorCode = "TXN-010008"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
