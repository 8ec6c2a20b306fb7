package rpc

import (
	"errors"
	"fmt"
)

var (
	// ErrRouteNotRegistered is the only failure Call raises (as a panic).
	ErrRouteNotRegistered = errors.New("rpc: route is not registered")

	ErrInvalidBaseURL   = errors.New("rpc: invalid base URL")
	ErrNilRegistry      = errors.New("rpc: nil registry")
	ErrEncodeRequest    = errors.New("rpc: failed to encode request")
	ErrRequestFailed    = errors.New("rpc: request failed")
	ErrUnexpectedStatus = errors.New("rpc: unexpected response status")
	ErrDecodeResponse   = errors.New("rpc: failed to decode response")
)

// StatusError is returned by Do for non-2xx responses. Message holds the
// "error" field of a JSON error body, when there is one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.Code)
	}
	return fmt.Sprintf("%s: %d: %s", ErrUnexpectedStatus, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
