package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the submission pipeline. Handlers and middleware map
// these onto HTTP statuses; everything else wraps them with context.

var (
	// ErrRateLimited indicates the caller exceeded the submission ceiling
	ErrRateLimited = errors.New("rate limited")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
