package handler

import "errors"

// Package-level errors for common failure scenarios
var (
	// ErrNilResponse indicates a nil Response was passed to Write
	ErrNilResponse = errors.New("nil response")
	// ErrEncodeResponse wraps JSON encoding failures while rendering
	ErrEncodeResponse = errors.New("failed to encode response")
)

// Messages used for pipeline-generated error responses.
const (
	MessageUnauthorized = "Unauthorized"
	MessageInternal     = "Internal server error. Please try again later. If the problem persists, please contact support."
)
