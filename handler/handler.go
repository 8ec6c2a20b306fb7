package handler

import (
	"net/http"
)

// Response renders itself to an http.ResponseWriter.
// Implementations should set headers, status code, and write body.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ResponseFunc adapts a function to the Response interface.
type ResponseFunc func(w http.ResponseWriter, r *http.Request) error

// Render calls f.
func (f ResponseFunc) Render(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// Write renders resp, returning ErrNilResponse for a nil response.
func Write(w http.ResponseWriter, r *http.Request, resp Response) error {
	if resp == nil {
		return ErrNilResponse
	}
	return resp.Render(w, r)
}
