package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrProvider      = errors.New("provider error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// BatchError reports a definition batch that could not be completed
// after all retries. It carries the lemmas of the failing batch so the
// caller can see exactly which words were lost.
type BatchError struct {
	Lemmas []string
	Reason string
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("definition batch [%s]: %s", strings.Join(e.Lemmas, ", "), e.Reason)
}

func (e *BatchError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrProvider
}
