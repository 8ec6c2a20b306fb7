package route

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rpckit/binder"
	"github.com/dmitrymomot/rpckit/pkg/logger"
	"github.com/dmitrymomot/rpckit/validate"
)

// deriveSession runs the session gate. It returns ErrUnauthorized when a
// session is required but absent.
func (rt *Route[B, Q, P, S, R]) deriveSession(r *http.Request) (*S, error) {
	if rt.cfg.Session == nil {
		return nil, nil
	}

	session, err := rt.cfg.Session(r)
	if err != nil {
		return nil, err
	}

	if session == nil && rt.cfg.RequiresAuthentication {
		rt.debug(r.Context(), "no session found for request")
		return nil, ErrUnauthorized
	}

	return session, nil
}

// validated holds the per-request result of the validation gate.
type validated[B, Q, P any] struct {
	body   *B
	query  *Q
	params *P
}

// validateRequest runs the validation gate over body, query and params.
// Under strict mode the first failing source aborts with *ValidationFailure.
func (rt *Route[B, Q, P, S, R]) validateRequest(ctx context.Context, r *http.Request) (validated[B, Q, P], error) {
	var out validated[B, Q, P]
	var err error

	if v := rt.cfg.Validators.Body; v != nil {
		if out.body, err = parseSource(ctx, rt, v, rt.bodyInput(r)); err != nil {
			return out, err
		}
	}

	if v := rt.cfg.Validators.Query; v != nil {
		in := validate.Input{Source: validate.Query, Request: r, Query: r.URL.Query()}
		if out.query, err = parseSource(ctx, rt, v, func() (validate.Input, error) { return in, nil }); err != nil {
			return out, err
		}
	}

	if v := rt.cfg.Validators.Params; v != nil {
		in := validate.Input{Source: validate.Params, Request: r, PathParam: rt.cfg.PathParam}
		if out.params, err = parseSource(ctx, rt, v, func() (validate.Input, error) { return in, nil }); err != nil {
			return out, err
		}
	}

	return out, nil
}

func (rt *Route[B, Q, P, S, R]) bodyInput(r *http.Request) func() (validate.Input, error) {
	return func() (validate.Input, error) {
		body, err := binder.ReadBody(r, rt.cfg.MaxBodySize)
		return validate.Input{Source: validate.Body, Request: r, Body: body}, err
	}
}

// parseSource extracts the raw input and applies the validator, honouring
// the strict/lenient policy. A lenient failure yields (nil, nil).
func parseSource[T, B, Q, P, S, R any](
	ctx context.Context,
	rt *Route[B, Q, P, S, R],
	v validate.Validator[T],
	input func() (validate.Input, error),
) (*T, error) {
	in, err := input()
	if err == nil {
		var value T
		if value, err = v.Parse(ctx, in); err == nil {
			return &value, nil
		}
	}

	if rt.cfg.Strict {
		rt.debug(ctx, "request validation failed", logger.Source(string(in.Source)), logger.Error(err))
		return nil, &ValidationFailure{Source: in.Source, Err: err}
	}

	rt.debug(ctx, "request validation failed, continuing without field",
		logger.Source(string(in.Source)),
		logger.Error(err),
	)
	return nil, nil
}

func (rt *Route[B, Q, P, S, R]) debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	rt.log(ctx, slog.LevelDebug, msg, attrs...)
}

func (rt *Route[B, Q, P, S, R]) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if !rt.cfg.Verbose {
		return
	}
	attrs = append(attrs, logger.Route(rt.desc.String()), logger.Component("route"))
	rt.logger.LogAttrs(ctx, level, msg, attrs...)
}
