package catalog

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("service not found")
	// ErrForbidden means the provider account is not active and approved.
	ErrForbidden = errors.New("provider cannot publish services")
)
