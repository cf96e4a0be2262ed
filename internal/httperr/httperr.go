// Package httperr defines errors carrying an HTTP status code and helpers
// for mapping arbitrary handler errors onto HTTP responses.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is the sentinel reported by collaborators (the doc provider,
// the API method registry) when the requested resource does not exist.
// Callers are expected to recover it locally as a 404 instead of forwarding
// it to the terminal error handler.
var ErrNotFound = New(http.StatusNotFound, "not found")

// Error is an error with an associated HTTP status code.
// Its message is considered client-facing: handlers echo it verbatim
// in API error bodies.
type Error struct {
	Code    int
	Message string
}

// New returns an *Error with the given status code and message.
func New(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf returns an *Error with a formatted message.
func Errorf(code int, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	return e.Message
}

// CodeOf extracts the HTTP status code from err. Errors without a code
// map to 500, matching the terminal error handler's contract.
func CodeOf(err error) int {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	return http.StatusInternalServerError
}

// ReasonPhrase renders the uniform route-error message for a status code,
// e.g. "404: Not Found". The raw error text is deliberately not included
// so uncoded internal errors never leak to clients.
func ReasonPhrase(code int) string {
	return fmt.Sprintf("%d: %s", code, http.StatusText(code))
}
