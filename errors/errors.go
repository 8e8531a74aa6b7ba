package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried by the caller.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Orchestration error constructors ---

// Configuration creates a new AppError for a missing or invalid setting.
// It is raised before any network call is made.
func Configuration(setting, reason string) *AppError {
	return &AppError{
		Code: ErrCodeConfiguration, Message: fmt.Sprintf("Configuration error for %s: %s", setting, reason),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"setting": setting},
	}
}

// UpstreamRequest creates a new AppError for a non-2xx answer from the remote
// service. The upstream's own error body, where available, goes into details.
func UpstreamRequest(operation string, statusCode int, body string) *AppError {
	e := &AppError{
		Code: ErrCodeUpstreamRequest, Message: fmt.Sprintf("Upstream %s request failed with status %d", operation, statusCode),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"operation": operation, "upstream_status": statusCode},
	}
	if body != "" {
		e.Details["upstream_body"] = body
	}
	return e
}

// ContractViolation creates a new AppError for a 2xx upstream answer whose
// expected shape is absent.
func ContractViolation(operation, reason string) *AppError {
	return &AppError{
		Code: ErrCodeContractViolation, Message: fmt.Sprintf("Upstream %s response violated the expected contract: %s", operation, reason),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"operation": operation},
	}
}

// DownloadParse creates a new AppError for fetched content that could not be
// parsed as the expected structured format.
func DownloadParse(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDownloadParse, Message: fmt.Sprintf("Could not parse %s content", operation),
		HTTPStatus: http.StatusBadGateway, Retryable: false,
		Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// --- Request validation constructors ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
