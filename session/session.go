package session

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/rpckit/route"
)

// Lookup resolves a token into a session. It returns ErrNotFound (or
// ErrExpired) when the token maps to nothing; any other error is treated as
// an unexpected failure by the route pipeline.
type Lookup[S any] func(ctx context.Context, token string) (*S, error)

type options struct {
	source TokenSource
}

// Option configures a deriver.
type Option func(*options)

// WithTokenSource replaces the default bearer token source.
func WithTokenSource(src TokenSource) Option {
	return func(o *options) {
		if src != nil {
			o.source = src
		}
	}
}

func newOptions(opts []Option) options {
	o := options{source: FromBearer()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Bearer returns a session deriver that extracts a token (by default from
// the Authorization bearer header) and resolves it with lookup.
// A missing token or an unknown/expired one yields no session.
//
//	store := session.NewMemoryStore[User]()
//	cfg.Session = session.Bearer(store.Get)
func Bearer[S any](lookup Lookup[S], opts ...Option) route.SessionFunc[S] {
	if lookup == nil {
		panic("session: Bearer: nil lookup")
	}
	o := newOptions(opts)

	return func(r *http.Request) (*S, error) {
		token := o.source(r)
		if token == "" {
			return nil, nil
		}

		s, err := lookup(r.Context(), token)
		if err != nil {
			if absent(err) {
				return nil, nil
			}
			return nil, err
		}
		return s, nil
	}
}
