package route

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dmitrymomot/rpckit/handler"
	"github.com/dmitrymomot/rpckit/pkg/logger"
	"github.com/dmitrymomot/rpckit/validate"
)

// Route is a defined endpoint: its request entry point plus the retained
// descriptor. It implements http.Handler and is safe for concurrent use.
type Route[B, Q, P, S, R any] struct {
	cfg    Config[B, Q, P, S, R]
	desc   Descriptor
	logger *slog.Logger
}

// New validates cfg and builds the route.
// It panics on misconfiguration (unknown method, empty path, nil handler):
// routes are defined at startup and a broken definition must stop it.
//
// Example:
//
//	var createProduct = route.New(route.Config[CreateProduct, route.None, route.None, User, Product]{
//		Method:                 route.MethodPost,
//		Path:                   "/api/products",
//		Strict:                 true,
//		RequiresAuthentication: true,
//		Validators: route.Validators[CreateProduct, route.None, route.None]{
//			Body: validate.Struct[CreateProduct](nil),
//		},
//		Session: sessions.Derive,
//		Handler: func(ctx context.Context, req route.Request[CreateProduct, route.None, route.None, User]) (Product, error) {
//			return store.Create(ctx, *req.Data, req.Session.ID)
//		},
//	})
func New[B, Q, P, S, R any](cfg Config[B, Q, P, S, R]) *Route[B, Q, P, S, R] {
	if err := checkConfig(cfg); err != nil {
		panic(err)
	}

	if cfg.SuccessStatus == 0 {
		cfg.SuccessStatus = http.StatusOK
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	desc := Descriptor{
		Path:                   cfg.Path,
		Method:                 cfg.Method,
		Strict:                 cfg.Strict,
		RequiresAuthentication: cfg.RequiresAuthentication,
		Verbose:                cfg.Verbose,
		HasSession:             cfg.Session != nil,
	}
	if cfg.Validators.Body != nil {
		desc.Sources = append(desc.Sources, validate.Body)
	}
	if cfg.Validators.Query != nil {
		desc.Sources = append(desc.Sources, validate.Query)
	}
	if cfg.Validators.Params != nil {
		desc.Sources = append(desc.Sources, validate.Params)
	}

	return &Route[B, Q, P, S, R]{cfg: cfg, desc: desc, logger: log}
}

func checkConfig[B, Q, P, S, R any](cfg Config[B, Q, P, S, R]) error {
	switch {
	case !cfg.Method.Valid():
		return fmt.Errorf("%w: %w: %q", ErrInvalidRoute, ErrInvalidMethod, cfg.Method)
	case cfg.Path == "":
		return fmt.Errorf("%w: path is required", ErrInvalidRoute)
	case !strings.HasPrefix(cfg.Path, "/"):
		return fmt.Errorf("%w: path %q must start with /", ErrInvalidRoute, cfg.Path)
	case cfg.Handler == nil:
		return fmt.Errorf("%w: %s %s: handler is required", ErrInvalidRoute, cfg.Method, cfg.Path)
	case cfg.SuccessStatus != 0 && (cfg.SuccessStatus < 200 || cfg.SuccessStatus > 299):
		return fmt.Errorf("%w: success status %d is not 2xx", ErrInvalidRoute, cfg.SuccessStatus)
	}
	return nil
}

// Descriptor returns a copy of the route's descriptor.
func (rt *Route[B, Q, P, S, R]) Descriptor() Descriptor {
	return rt.desc.clone()
}

// Endpoint returns the typed client handle of the route.
func (rt *Route[B, Q, P, S, R]) Endpoint() Endpoint[B, Q, P, R] {
	return Endpoint[B, Q, P, R]{path: rt.desc.Path, method: rt.desc.Method}
}

// HandlerFunc returns the entry point as an http.HandlerFunc.
func (rt *Route[B, Q, P, S, R]) HandlerFunc() http.HandlerFunc {
	return rt.ServeHTTP
}

// ServeHTTP is the request entry point. It always writes exactly one
// response:
//
//  1. session gate: 401 when a required session is missing;
//  2. validation gate: 400 on a strict validation failure;
//  3. handler: its result, or the status of a returned handler.HTTPError;
//  4. anything else, panics included: an opaque 500.
func (rt *Route[B, Q, P, S, R]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w}

	if rt.cfg.Observer != nil {
		defer func() {
			rt.cfg.Observer.ObserveRoute(r.Context(), rt.Descriptor(), sw.Status(), time.Since(start))
		}()
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if p == http.ErrAbortHandler {
			panic(p)
		}
		rt.log(r.Context(), slog.LevelError, "[500]: panic in route handler",
			slog.Any("panic", p),
			slog.String("stack", string(debug.Stack())),
		)
		rt.writeInternalError(sw, r)
	}()

	resp := rt.process(r)

	if err := handler.Write(sw, r, resp); err != nil {
		rt.log(r.Context(), slog.LevelError, "[500]: failed to render response", logger.Error(err))
		rt.writeInternalError(sw, r)
	}
}

// process runs the gates and the handler and returns the response to write.
// It never touches the ResponseWriter.
func (rt *Route[B, Q, P, S, R]) process(r *http.Request) handler.Response {
	ctx := r.Context()

	session, err := rt.deriveSession(r)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return handler.Unauthorized()
		}
		rt.log(ctx, slog.LevelError, "[500]: session derivation failed", logger.Error(err))
		return handler.InternalError()
	}

	fields, err := rt.validateRequest(ctx, r)
	if err != nil {
		var failure *ValidationFailure
		if errors.As(err, &failure) {
			var details map[string][]string
			if errs, ok := validate.AsErrors(failure.Err); ok {
				details = errs.Details()
			}
			return handler.JSONValidationError(failure.Error(), details)
		}
		rt.log(ctx, slog.LevelError, "[500]: request validation errored", logger.Error(err))
		return handler.InternalError()
	}

	result, err := rt.cfg.Handler(ctx, Request[B, Q, P, S]{
		HTTP:    r,
		Data:    fields.body,
		Query:   fields.query,
		Params:  fields.params,
		Session: session,
	})
	if err != nil {
		if httpErr, ok := handler.AsHTTPError(err); ok {
			rt.debug(ctx, "handler returned HTTP error", logger.Error(err), slog.Int("status", httpErr.Code))
			return handler.FromHTTPError(httpErr)
		}
		rt.log(ctx, slog.LevelError, "[500]: error in route handler", logger.Error(err))
		return handler.InternalError()
	}

	if resp, ok := any(result).(handler.Response); ok && resp != nil {
		return resp
	}
	return handler.JSON(result, handler.WithJSONStatus(rt.cfg.SuccessStatus))
}

// writeInternalError answers with the opaque 500 unless a response has
// already started.
func (rt *Route[B, Q, P, S, R]) writeInternalError(sw *statusWriter, r *http.Request) {
	if sw.wroteHeader {
		return
	}
	if err := handler.InternalError().Render(sw, r); err != nil {
		rt.log(r.Context(), slog.LevelError, "failed to write internal error response", logger.Error(err))
	}
}

// statusWriter records whether and with which status a response started.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.status = code
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Status returns the written status, 200 if only the body was written and
// 0 if nothing was written.
func (w *statusWriter) Status() int {
	return w.status
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

var _ http.Handler = (*Route[None, None, None, None, None])(nil)
