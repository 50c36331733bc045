package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors (raised before a request is sent)
const (
	// ErrCodeInvalidConfig indicates the client configuration is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeMissingField indicates a required value could not be resolved.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeTokenMissing indicates no usable access token is set.
	ErrCodeTokenMissing ErrorCode = "TOKEN_MISSING"
	// ErrCodeTokenExpired indicates the access token is expired or revoked.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
)

// Remote errors
const (
	// ErrCodeRemoteAPI indicates the remote service reported a failure.
	ErrCodeRemoteAPI ErrorCode = "REMOTE_API_ERROR"
	// ErrCodeInvalidResponse indicates a response lacked an expected field.
	ErrCodeInvalidResponse ErrorCode = "INVALID_RESPONSE"
)

// Transport errors
const (
	// ErrCodeConnectionFailed indicates a failed connection to the remote service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// ErrCodeInternal indicates an unexpected internal failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var configurationCodes = map[ErrorCode]bool{
	ErrCodeInvalidConfig: true,
	ErrCodeMissingField:  true,
	ErrCodeTokenMissing:  true,
	ErrCodeTokenExpired:  true,
}

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
}

// IsConfigurationCode reports whether code belongs to the configuration kind.
func IsConfigurationCode(code ErrorCode) bool {
	return configurationCodes[code]
}

// IsRetryableCode returns true if the error code indicates a transient failure.
// The SDK never retries on its own; the flag is informational for callers.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
