package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Orchestration errors
const (
	// ErrCodeConfiguration indicates a required credential or setting is missing.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeUpstreamRequest indicates a non-2xx answer from the remote service.
	ErrCodeUpstreamRequest ErrorCode = "UPSTREAM_REQUEST_ERROR"
	// ErrCodeContractViolation indicates a 2xx answer whose expected shape is absent.
	ErrCodeContractViolation ErrorCode = "CONTRACT_VIOLATION"
	// ErrCodeDownloadParse indicates fetched content that could not be parsed.
	ErrCodeDownloadParse ErrorCode = "DOWNLOAD_PARSE_ERROR"
)

// Request validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeUpstreamRequest: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Retrying here means the caller may repeat the call on its own cadence; a
// failed submit must not be resubmitted automatically (it would create a
// duplicate billable job), so only status/result reads qualify.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
