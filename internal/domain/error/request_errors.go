package error

// RequestErrorCode defines error codes for malformed HTTP requests.
// Format: REQ-XXYYYY where XX is category and YYYY is specific error.
type RequestErrorCode string

const (
	ErrCodeInvalidRequest      RequestErrorCode = "REQ-010001"
	ErrCodeInvalidExportFormat RequestErrorCode = "REQ-010002"
	ErrCodeMissingFile         RequestErrorCode = "REQ-010003"
	ErrCodeRateLimited         RequestErrorCode = "REQ-020001"
)
