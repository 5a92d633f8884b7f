package chat

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrEmptyContent        = errors.New("message content cannot be empty")
	ErrCounterpartNotFound = errors.New("counterpart not found")
	ErrNotFound            = errors.New("channel not found")
)
