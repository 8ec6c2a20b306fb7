package route

import "net/http"

// None marks an unused type slot, e.g. a route without a query validator.
type None struct{}

// Request is what a handler receives once both gates passed.
// A nil field means the source has no validator, or failed validation on a
// lenient route. Session is nil when no deriver is configured or the deriver
// found no session on a route that does not require one.
type Request[B, Q, P, S any] struct {
	HTTP    *http.Request
	Data    *B
	Query   *Q
	Params  *P
	Session *S
}
