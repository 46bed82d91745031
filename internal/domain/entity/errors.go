package entity

import (
	"errors"
	"fmt"
)

// Domain-level sentinel errors. Use case packages derive their own
// sentinels from these by wrapping, so callers can match either the
// specific error or the domain category with errors.Is.
var (
	// ErrNotFound indicates that a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that a caller-supplied identifier or
	// parameter is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed is the category all field validation errors
	// unwrap to.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError reports which field failed validation and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match a ValidationError against ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
