// Package apperr provides the typed failure taxonomy shared by handlers
// and middleware.
package apperr

import (
	"fmt"
	"net/http"
)

// Error codes as constants
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeUnauth      = "UNAUTHENTICATED"
	CodeForbidden   = "FORBIDDEN"
	CodeNotFound    = "NOT_FOUND"
	CodeUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal    = "INTERNAL_ERROR"
)

// Error is an application failure carrying the HTTP status it maps to.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a client error for a missing or invalid field.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Status: http.StatusBadRequest}
}

// Unauthenticated creates an error for a missing or failed credential.
func Unauthenticated(message string) *Error {
	return &Error{Code: CodeUnauth, Message: message, Status: http.StatusUnauthorized}
}

// Forbidden creates an error for an ownership failure. It responds 401
// rather than 403, preserving the API's historical behavior.
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message, Status: http.StatusUnauthorized}
}

// NotFound creates an error for an id that does not resolve.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

// Unavailable creates an error for a dependency that is not configured.
func Unavailable(message string) *Error {
	return &Error{Code: CodeUnavailable, Message: message, Status: http.StatusInternalServerError}
}

// Internal wraps an unexpected store or infrastructure error.
func Internal(message string, err error) *Error {
	return &Error{Code: CodeInternal, Message: message, Status: http.StatusInternalServerError, Err: err}
}
