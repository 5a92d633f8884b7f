package complaint

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("complaint not found")
	ErrAttachment = errors.New("invalid attachment")
)

// FieldErrors maps a form field to the rule it failed.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, tag := range e {
		parts = append(parts, field+" "+tag)
	}
	sort.Strings(parts)
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e FieldErrors) Unwrap() error { return ErrValidation }
