package validate

import "errors"

var (
	// ErrDecode wraps failures to turn raw input into the target type.
	ErrDecode = errors.New("failed to decode input")
	// ErrUnknownSource is returned when an Input carries an unsupported source.
	ErrUnknownSource = errors.New("unknown field source")
	// ErrNilValidator is returned by adapters constructed without a backing validator.
	ErrNilValidator = errors.New("validator is not configured")
)
