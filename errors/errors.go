package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the error type for failures detected inside the SDK.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates the failure was transient.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status of the response that produced the error, if any.
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

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
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
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Configuration errors ---

// MissingRedirectURI is raised when neither the call nor the client supplies a redirect URI.
func MissingRedirectURI() *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: "redirect uri is needed",
		Details: map[string]any{"field": "redirect_uri"},
	}
}

// MissingToken is raised when an operation needs a valid access token and none is set.
func MissingToken(reason string) *AppError {
	if reason == "" {
		reason = "a valid access token is required"
	}
	return &AppError{Code: ErrCodeTokenMissing, Message: reason}
}

// RevokedTokenAPICode is the platform code reported alongside TokenRevoked.
const RevokedTokenAPICode = "100015"

// TokenRevoked is raised when a signed call is attempted with an absent or expired token.
func TokenRevoked() *AppError {
	return &AppError{
		Code: ErrCodeTokenExpired, Message: "access token is revoked",
		Details: map[string]any{"api_code": RevokedTokenAPICode},
	}
}

// InvalidConfig creates an error for a configuration value that failed validation.
func InvalidConfig(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("invalid configuration: %s", reason),
		Details: details,
	}
}

// MissingField creates an error for a required value that is missing.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// --- Remote and transport errors ---

// InvalidResponse creates an error for a response that is missing expected data.
func InvalidResponse(reason string) *AppError {
	return &AppError{Code: ErrCodeInvalidResponse, Message: reason}
}

// ConnectionFailed creates an error for a failed connection to a remote service.
func ConnectionFailed(service string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("unable to connect to %s", service),
		Retryable: true, Details: map[string]any{"service": service},
	}
}

// Timeout creates an error for an operation that did not finish in time.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "the request took too long",
		Retryable: true, Details: map[string]any{"operation": operation},
	}
}

// Internal creates an error for an unexpected internal failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "an unexpected error occurred", Cause: cause}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && IsConfigurationCode(appErr.Code)
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
