// Package httperr defines the business error taxonomy shared between the
// service layer and the HTTP dispatch layer. Each error carries a
// human-readable message and the HTTP status code it maps to, so services
// can signal rule violations without importing anything HTTP-specific.
package httperr

import "errors"

// Error is a business-rule violation with an associated HTTP status code.
// The dispatch layer converts it into a JSON error envelope; it is never
// persisted and never wraps infrastructure errors.
type Error struct {
	Message string
	Code    int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with an arbitrary status code.
func New(message string, code int) *Error {
	return &Error{Message: message, Code: code}
}

// NotFound creates a 404 error for a missing resource.
func NotFound(message string) *Error {
	return &Error{Message: message, Code: 404}
}

// Forbidden creates a 403 error for a business rule that denies the operation.
func Forbidden(message string) *Error {
	return &Error{Message: message, Code: 403}
}

// As extracts an *Error from anywhere in err's chain.
// Returns nil and false if no Error is present.
func As(err error) (*Error, bool) {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
