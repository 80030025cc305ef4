package error

import "errors"

// Classification domain errors.
var (
	// ErrEmptyKeyword is returned when a keyword test is requested without a keyword.
	ErrEmptyKeyword = errors.New("keyword is required")

	// ErrInvalidRuleTable is returned when the rule table file cannot be decoded.
	ErrInvalidRuleTable = errors.New("invalid classification rule table")

	// ErrAdvisorUnavailable is returned when no classification advisor is configured.
	ErrAdvisorUnavailable = errors.New("classification advisor unavailable")
)

// ClassificationErrorCode defines error codes for classification errors.
type ClassificationErrorCode string

const (
	ErrCodeEmptyKeyword         ClassificationErrorCode = "CLS-010001"
	ErrCodeInvalidRuleTable     ClassificationErrorCode = "CLS-010002"
	ErrCodeAdvisorUnavailable   ClassificationErrorCode = "CLS-020001"
	ErrCodeAdvisorRequestFailed ClassificationErrorCode = "CLS-020002"
)

// ClassificationError represents a classification error with code and message.
type ClassificationError struct {
	Code    ClassificationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// NewClassificationError creates a new ClassificationError with the given code and message.
func NewClassificationError(code ClassificationErrorCode, message string, err error) *ClassificationError {
	return &ClassificationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
