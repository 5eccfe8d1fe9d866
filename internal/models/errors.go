package models

import "errors"

// ErrInvalidQuery is the sentinel all request validation failures unwrap to.
var ErrInvalidQuery = errors.New("invalid query")

// ValidationError is a client input error. Its message is safe to return to callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrInvalidQuery).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidQuery
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// NewValidationError returns a client input error carrying msg.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
