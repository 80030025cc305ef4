package error

import "errors"

// Freight quote errors.
var (
	// ErrQuoteMissingFields is returned when client, origin or destination is blank.
	ErrQuoteMissingFields = errors.New("client, origin and destination are required")

	// ErrInvalidDistance is returned when the distance is below one kilometre.
	ErrInvalidDistance = errors.New("distance must be at least 1 km")

	// ErrInvalidWeight is returned when the weight is not positive.
	ErrInvalidWeight = errors.New("weight must be greater than zero")
)

// Pickup order errors.
var (
	// ErrPickupMissingFields is returned when a sender or receiver field is blank.
	ErrPickupMissingFields = errors.New("sender and receiver name, address, city and phone are required")

	// ErrPickupNotFound is returned when no pickup order has the given number.
	ErrPickupNotFound = errors.New("pickup order not found")

	// ErrInvalidPickupStatus is returned when the status is not one of the known values.
	ErrInvalidPickupStatus = errors.New("invalid pickup status")

	// ErrInvalidCargoType is returned when the cargo type is not one of the known values.
	ErrInvalidCargoType = errors.New("invalid cargo type")
)

// Contact errors.
var (
	// ErrContactMissingFields is returned when name or phone is blank.
	ErrContactMissingFields = errors.New("contact name and phone are required")

	// ErrContactNotFound is returned when no contact matches.
	ErrContactNotFound = errors.New("contact not found")

	// ErrContactImportColumns is returned when an import file lacks a required or mapped column.
	ErrContactImportColumns = errors.New("contact import columns not found")

	// ErrInvalidContactImportMode is returned when the import mode is not recognized.
	ErrInvalidContactImportMode = errors.New("invalid contact import mode")
)

// OperationsErrorCode defines error codes for quote, pickup and contact errors.
// Format: XXX-XXYYYY where the prefix names the area.
type OperationsErrorCode string

const (
	ErrCodeQuoteMissingFields OperationsErrorCode = "QTE-010001"
	ErrCodeInvalidDistance    OperationsErrorCode = "QTE-010002"
	ErrCodeInvalidWeight      OperationsErrorCode = "QTE-010003"

	ErrCodePickupMissingFields OperationsErrorCode = "PCK-010001"
	ErrCodePickupNotFound      OperationsErrorCode = "PCK-010002"
	ErrCodeInvalidPickupStatus OperationsErrorCode = "PCK-010003"
	ErrCodeInvalidCargoType    OperationsErrorCode = "PCK-010004"

	ErrCodeContactMissingFields OperationsErrorCode = "CTT-010001"
	ErrCodeContactNotFound      OperationsErrorCode = "CTT-010002"
	ErrCodeContactImportColumns OperationsErrorCode = "CTT-010003"
	ErrCodeContactImportMode    OperationsErrorCode = "CTT-010004"
)

// OperationsError represents a quote, pickup or contact error with code and message.
type OperationsError struct {
	Code    OperationsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *OperationsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *OperationsError) Unwrap() error {
	return e.Err
}

// NewOperationsError creates a new OperationsError with the given code and message.
func NewOperationsError(code OperationsErrorCode, message string, err error) *OperationsError {
	return &OperationsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
