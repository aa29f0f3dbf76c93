// Package errs defines the error taxonomy shared by every engine operation.
// Handlers map these onto HTTP status codes; callers decide retryability from
// the sentinel, not from error text.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the resource does not exist or is not visible to the caller.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden: wrong role or non-owner. Not retryable.
	ErrForbidden = errors.New("operation not permitted for caller")

	// ErrInvalidTransition: the stored status does not admit the requested
	// action. The caller must re-fetch before retrying.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInsufficientFunds terminally fails a transfer attempt; a new transfer
	// must be created.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConcurrency: a concurrent writer won the balance CAS. Transient,
	// retryable with backoff.
	ErrConcurrency = errors.New("concurrent modification, retry")

	// ErrConflict: a uniqueness or business-rule conflict (duplicate IBAN,
	// reused idempotency key with a different body).
	ErrConflict = errors.New("conflict")
)

// ValidationError reports bad input on a named field. Not retryable until the
// input is fixed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Message)
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
