package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

// jsonResponse implements Response for JSON rendering
type jsonResponse struct {
	status int
	body   any
}

// Render encodes the body before touching the ResponseWriter so that an
// encoding failure can still be answered with a different status.
func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(j.body); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeResponse, err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err := w.Write(buf.Bytes())
	return err
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		if status > 0 {
			r.status = status
		}
	}
}

// JSON creates a 200 OK response carrying v unchanged.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{
		status: http.StatusOK,
		body:   v,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError creates an error response with the given status and message.
func JSONError(status int, message string) Response {
	return &jsonResponse{
		status: status,
		body:   ErrorResponse{Error: message},
	}
}

// JSONValidationError creates a 400 response naming the failure and listing
// per-field messages.
func JSONValidationError(message string, details map[string][]string) Response {
	return &jsonResponse{
		status: http.StatusBadRequest,
		body:   ErrorResponse{Error: message, Details: details},
	}
}

// Unauthorized is the response of a failed session gate.
func Unauthorized() Response {
	return JSONError(http.StatusUnauthorized, MessageUnauthorized)
}

// InternalError is the opaque response for any unexpected failure.
func InternalError() Response {
	return JSONError(http.StatusInternalServerError, MessageInternal)
}

// FromHTTPError renders an HTTPError as {"error": key}.
func FromHTTPError(err HTTPError) Response {
	return JSONError(err.Code, err.Key)
}
