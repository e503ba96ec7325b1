package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrValidation is a generic sentinel for malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a write lost to a concurrent writer. It is an
	// internal signal: services resolve it before anything reaches a
	// caller.
	ErrConflict = errors.New("conflict")
)

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
