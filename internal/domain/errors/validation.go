package errors

import (
	"maps"
	"net/http"
	"slices"
	"strings"
)

// ValidationError carries every field violation of a single submission.
// Keys are field paths such as "email" or "homeLocation.lat"; values are
// user-facing reasons. It matches ErrValidationFailed under errors.Is.
type ValidationError struct {
	fields map[string]string
}

// NewValidationError creates a ValidationError from a field to reason mapping.
// The mapping is copied.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{fields: maps.Clone(fields)}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return ErrValidationFailed.Message() + ": " + e.Details()
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return ErrValidationFailed.ErrorCode()
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return ErrValidationFailed.Message()
}

// Details renders the violations as "field: reason" pairs in field order.
func (e *ValidationError) Details() string {
	keys := slices.Sorted(maps.Keys(e.fields))
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.fields[key])
	}

	return strings.Join(parts, "; ")
}

// Fields returns a copy of the field violations.
func (e *ValidationError) Fields() map[string]string {
	return maps.Clone(e.fields)
}

// Has reports whether the given field has a violation.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.fields[field]

	return ok
}
