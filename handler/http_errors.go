package handler

import (
	"errors"
	"net/http"
)

// HTTPError is an error with an explicit status code. Handlers return it to
// choose a non-2xx response; Key is written as the error message.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // Stable message key (e.g., "not_found", "conflict")
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// 4xx Client Errors
var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized"}
	ErrForbidden           = HTTPError{Code: http.StatusForbidden, Key: "forbidden"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed    = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrConflict            = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrGone                = HTTPError{Code: http.StatusGone, Key: "gone"}
	ErrUnprocessableEntity = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
	ErrTooManyRequests     = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
)

// 5xx Server Errors
var (
	ErrNotImplemented     = HTTPError{Code: http.StatusNotImplemented, Key: "not_implemented"}
	ErrServiceUnavailable = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)

// NewHTTPError creates a custom HTTP error with the given status code and key.
//
// Example:
//
//	err := handler.NewHTTPError(http.StatusForbidden, "insufficient_permissions")
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

// AsHTTPError extracts an HTTPError from err.
func AsHTTPError(err error) (HTTPError, bool) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return HTTPError{}, false
}
