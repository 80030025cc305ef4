package error

import "errors"

// Reconciliation domain errors.
var (
	// ErrNoDocumentLines is returned when document extraction produced zero lines.
	ErrNoDocumentLines = errors.New("no document lines extracted")

	// ErrUnsupportedDocument is returned when an uploaded document has an unknown format.
	ErrUnsupportedDocument = errors.New("unsupported document format")

	// ErrInvalidDateRange is returned when a due-date range ends before it starts.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvoiceNotFound is returned when no shipment carries the requested invoice number.
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// ReconciliationErrorCode defines error codes for reconciliation errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type ReconciliationErrorCode string

const (
	ErrCodeNoDocumentLines     ReconciliationErrorCode = "REC-010001"
	ErrCodeUnsupportedDocument ReconciliationErrorCode = "REC-010002"
	ErrCodeInvalidDateRange    ReconciliationErrorCode = "REC-010003"
	ErrCodeInvoiceNotFound     ReconciliationErrorCode = "REC-010004"
)

// ReconciliationError represents a reconciliation error with code and message.
type ReconciliationError struct {
	Code    ReconciliationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReconciliationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// NewReconciliationError creates a new ReconciliationError with the given code and message.
func NewReconciliationError(code ReconciliationErrorCode, message string, err error) *ReconciliationError {
	return &ReconciliationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
