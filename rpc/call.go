package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/rpckit/route"
)

// Args are the per-call arguments of an endpoint.
type Args[B, Q, P any] struct {
	// Body is JSON-encoded for POST, PUT and PATCH and ignored otherwise.
	Body B
	// Query is encoded with `query` struct tags, or taken from a map or
	// url.Values; repeated keys are kept.
	Query *Q
	// Params fill the {name} placeholders of the path (`path` struct tags or a map).
	Params *P
	// Headers are set last and override client and derived headers.
	Headers map[string]string
}

// Do performs one exchange with the endpoint and returns the decoded
// response. Failures are returned (and reported to the logger and error
// hooks); an endpoint missing from the client's registry yields
// ErrRouteNotRegistered without any network traffic.
func Do[B, Q, P, R any](ctx context.Context, c *Client, ep route.Endpoint[B, Q, P, R], args Args[B, Q, P]) (R, error) {
	var out R
	key := ep.Key()

	if !c.registry.Has(key.Path, key.Method) {
		return out, fmt.Errorf("%w: %s", ErrRouteNotRegistered, key)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := request{key: key, body: args.Body, headers: args.Headers}
	if args.Query != nil {
		req.query = args.Query
	}
	if args.Params != nil {
		req.params = args.Params
	}

	start := time.Now()
	status, err := c.exchange(ctx, req, &out)
	if c.observer != nil {
		c.observer.ObserveCall(ctx, key, status, time.Since(start), err)
	}
	if err != nil {
		c.report(ctx, key, status, err)
		var zero R
		return zero, err
	}
	return out, nil
}

// Call is Do that reports failures as absence: it returns nil on any
// network, status, encode or decode failure. Calling an endpoint that is
// not in the client's registry is a programming error and panics with an
// error wrapping ErrRouteNotRegistered.
//
//	product := rpc.Call(ctx, client, getProduct.Endpoint(), rpc.Args[route.None, route.None, ProductParams]{
//		Params: &ProductParams{ID: id},
//	})
//	if product == nil {
//		// failure already logged
//	}
func Call[B, Q, P, R any](ctx context.Context, c *Client, ep route.Endpoint[B, Q, P, R], args Args[B, Q, P]) *R {
	key := ep.Key()
	if !c.registry.Has(key.Path, key.Method) {
		panic(fmt.Errorf("%w: %s", ErrRouteNotRegistered, key))
	}

	out, err := Do(ctx, c, ep, args)
	if err != nil {
		return nil
	}
	return &out
}
