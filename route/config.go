package route

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/rpckit/binder"
	"github.com/dmitrymomot/rpckit/validate"
)

// HandlerFunc is the business logic of a route. It runs only after the
// session and validation gates passed.
//
// A returned value is rendered as JSON with the route's success status; a
// value implementing handler.Response renders itself instead. A returned
// handler.HTTPError selects its own status; any other error becomes an
// opaque 500.
type HandlerFunc[B, Q, P, S, R any] func(ctx context.Context, req Request[B, Q, P, S]) (R, error)

// SessionFunc derives the session from a request. A nil session with a nil
// error means "no session"; an error is an unexpected failure (500).
type SessionFunc[S any] func(r *http.Request) (*S, error)

// Validators holds the optional validator of each field source.
// A nil validator leaves the source unvalidated and absent.
type Validators[B, Q, P any] struct {
	Body   validate.Validator[B]
	Query  validate.Validator[Q]
	Params validate.Validator[P]
}

// Observer is notified once per request with the final status.
type Observer interface {
	ObserveRoute(ctx context.Context, d Descriptor, status int, elapsed time.Duration)
}

// Config defines a route.
//
//	B - request body type
//	Q - query string type
//	P - path parameters type
//	S - session type
//	R - success response type
//
// Use None for unused slots.
type Config[B, Q, P, S, R any] struct {
	Method Method
	// Path may contain {name} placeholders.
	Path string

	// Strict aborts with 400 when any configured validator fails.
	// When false the failing field is passed to the handler as nil.
	Strict bool
	// RequiresAuthentication aborts with 401 when Session yields no session.
	// Ignored when Session is nil.
	RequiresAuthentication bool
	// Verbose enables diagnostic logging. It never changes control flow.
	Verbose bool

	Validators Validators[B, Q, P]
	Session    SessionFunc[S]
	Handler    HandlerFunc[B, Q, P, S, R]

	// Logger receives verbose diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
	// PathParam resolves path parameters for the params validator.
	// Defaults to (*http.Request).PathValue; pass chi.URLParam for chi.
	PathParam binder.PathExtractor
	// MaxBodySize caps the body read for the body validator.
	// Defaults to binder.DefaultMaxBodySize.
	MaxBodySize int64
	// SuccessStatus is the status of successful responses. Defaults to 200.
	SuccessStatus int
	// Observer, if set, is told about every completed request.
	Observer Observer
}
