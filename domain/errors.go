package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced by the services. UI code is expected to catch these
// at the call site and render its own localized message.
var (
	// ErrUnauthenticated no identity present when an operation requires one
	ErrUnauthenticated = errors.New("no authenticated user")

	// ErrNotFound the referenced row does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict optimistic-concurrency token did not match the stored row
	ErrConflict = errors.New("conflict: row was modified by another writer")
)

// ValidationError client-side required-field check failed.
// Raised before any network call is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// Required shorthand for the common "field is required" case
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

// Invalid shorthand for enum/range violations
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
