package account

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("account not found")
)
