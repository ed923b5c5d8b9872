package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel error classes. Services wrap these; handlers map them to HTTP
// statuses with errors.Is, so no status codes leak below the boundary.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")
)

// NotFoundf wraps ErrNotFound with a resource description.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// Validationf wraps ErrValidation with the failed rule.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// Forbiddenf wraps ErrForbidden with the denied action.
func Forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrForbidden}, args...)...)
}
