package services

import "errors"

var (
	// Credential mismatch. Deliberately generic: callers learn nothing
	// about which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTruckNotFound    = errors.New("truck not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrDeliveryNotFound = errors.New("delivery not found")

	// A completion attempt is already running for the same delivery.
	ErrCompletionInFlight = errors.New("completion already in progress")

	// Destructive bulk operations must be explicitly confirmed.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ValidationError reports a missing or malformed user selection. The
// operation is aborted before any write happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
