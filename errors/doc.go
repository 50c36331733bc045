// Package errors defines the error model of the SDK.
//
// Two kinds of failure reach callers. Configuration errors (*AppError) are
// raised locally before anything is sent: a missing redirect URI, or a signed
// call attempted without a valid access token. Remote API errors (*APIError)
// are decoded from a response body that reports failure through either the
// "error"/"error_description" pair or a nonzero "ret" with "msg".
//
// Neither kind is retried or suppressed inside the SDK.
package errors
