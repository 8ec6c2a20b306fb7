package route

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/rpckit/validate"
)

var (
	ErrInvalidMethod  = errors.New("unsupported HTTP method")
	ErrInvalidRoute   = errors.New("invalid route configuration")
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrUnauthorized   = errors.New("session required")
	ErrValidation     = errors.New("request validation failed")
)

// ValidationFailure is the strict-mode failure of one field source.
type ValidationFailure struct {
	Source validate.Source
	Err    error
}

// Error names the failing source only; the cause stays in Err.
func (f *ValidationFailure) Error() string {
	return fmt.Sprintf("Invalid request data received for '%s'", f.Source)
}

func (f *ValidationFailure) Unwrap() []error {
	return []error{ErrValidation, f.Err}
}
