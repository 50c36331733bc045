package httpclient

import (
	stderrors "errors"
	"fmt"
	"net/url"

	"github.com/kbukum/qqconnect/errors"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeEncode indicates the request could not be built.
	ErrCodeEncode
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeClient indicates any other 4xx status.
	ErrCodeClient
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeEncode:
		return "encode"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a transport-level failure, or a non-2xx status when StrictStatus is set.
type Error struct {
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Retryable indicates whether the operation can be retried.
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error. For timeouts and connection
// failures this is an *errors.AppError wrapping the transport error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error. It matches errors.ErrCodeTimeout.
func NewTimeoutError(err error) *Error {
	op, _ := remoteTarget(err)
	return &Error{
		Code:      ErrCodeTimeout,
		Message:   err.Error(),
		Retryable: true,
		Err:       errors.Timeout(op).WithCause(err),
	}
}

// NewConnectionError creates a connection error. It matches errors.ErrCodeConnectionFailed.
func NewConnectionError(err error) *Error {
	_, host := remoteTarget(err)
	return &Error{
		Code:      ErrCodeConnection,
		Message:   err.Error(),
		Retryable: true,
		Err:       errors.ConnectionFailed(host).WithCause(err),
	}
}

// remoteTarget extracts the operation and host from a *url.Error.
func remoteTarget(err error) (op, host string) {
	op, host = "request", "remote service"
	var ue *url.Error
	if !stderrors.As(err, &ue) {
		return op, host
	}
	if ue.Op != "" {
		op = ue.Op
	}
	if u, perr := url.Parse(ue.URL); perr == nil && u.Host != "" {
		host = u.Host
	}
	return op, host
}

// NewEncodeError creates an error for a request that could not be built.
func NewEncodeError(err error) *Error {
	return &Error{
		Code:    ErrCodeEncode,
		Message: err.Error(),
		Err:     err,
	}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	e := &Error{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == 401 || statusCode == 403:
		e.Code = ErrCodeAuth
	case statusCode == 404:
		e.Code = ErrCodeNotFound
	case statusCode == 429:
		e.Code, e.Retryable = ErrCodeRateLimit, true
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeClient
	case statusCode >= 500:
		e.Code, e.Retryable = ErrCodeServer, true
	default:
		e.Code = ErrCodeServer
	}
	return e
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsEncode checks if an error is a request encoding error.
func IsEncode(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Code == ErrCodeEncode
}

// IsStatus checks if an error came from a non-2xx status.
func IsStatus(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.StatusCode > 0
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Retryable
}
