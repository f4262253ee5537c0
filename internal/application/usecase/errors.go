package usecase

import (
	"errors"
	"strings"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// FieldError describes why a single input field was rejected.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects the field errors of one request.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError with a single field error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field error was collected.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// errOrNil returns e as an error only when it holds field errors, so callers
// never return a non-nil interface wrapping an empty ValidationError.
func (e *ValidationError) errOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
