package booking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrServiceNotFound  = errors.New("service not found or inactive")
	ErrProviderMismatch = errors.New("provider does not own the service")
	// ErrNotFound also covers a booking in the wrong status or owned by someone else.
	ErrNotFound = errors.New("booking not found or already processed")
)
