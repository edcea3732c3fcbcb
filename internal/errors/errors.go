// Package errors defines the error taxonomy for the template catalog.
// Per-file load problems surface as *ValidationError entries collected by
// the catalog; missing templates surface as *NotFoundError only on the
// loader path — the query surface returns empty results instead of errors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a template definition that could not be parsed
// or violated a structural invariant.
type ValidationError struct {
	// Path is the definition file that failed, empty when validating
	// in-memory data
	Path string
	// Field names the offending field or invariant when known
	Field string
	// Message describes the failure
	Message string
	// Cause is the underlying parse or coercion error, may be nil
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Field != "" {
		parts = append(parts, "field "+e.Field)
	}
	parts = append(parts, e.Message)
	result := strings.Join(parts, ": ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error for the given file.
func NewValidationError(path, message string) *ValidationError {
	return &ValidationError{Path: path, Message: message}
}

// WrapValidation wraps an underlying error as a validation failure.
func WrapValidation(path, message string, cause error) *ValidationError {
	return &ValidationError{Path: path, Message: message, Cause: cause}
}

// WithField attaches the offending field name.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// NotFoundError reports a template definition file that does not exist.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template file not found: %s", e.Path)
}

// NewNotFoundError creates a not-found error for the given file.
func NewNotFoundError(path string) *NotFoundError {
	return &NotFoundError{Path: path}
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}
