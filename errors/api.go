package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
)

// Convention identifies which failure shape a response body used.
type Convention string

const (
	// ConventionError is the {"error": code, "error_description": text} shape.
	ConventionError Convention = "error"
	// ConventionRet is the {"ret": nonzero, "msg": text} shape.
	ConventionRet Convention = "ret"
)

// APIError is a failure reported by the remote service in a decoded response.
type APIError struct {
	// Code is the remote code as it appeared in the body ("100", "100015").
	Code string `json:"code"`
	// Message is error_description or msg, empty when absent.
	Message string `json:"message"`
	// Convention records which shape the body used.
	Convention Convention `json:"convention"`
	// HTTPStatus is the status code of the response.
	HTTPStatus int `json:"-"`
}

// NewAPIError creates an APIError.
func NewAPIError(convention Convention, code, message string) *APIError {
	return &APIError{Code: code, Message: message, Convention: convention}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCodeRemoteAPI, e.Code, e.Message)
}

// IntCode parses Code as an integer.
func (e *APIError) IntCode() (int, bool) {
	n, err := strconv.Atoi(e.Code)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsAPIError checks if an error is an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr)
}

// AsAPIError converts an error to an APIError if possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
