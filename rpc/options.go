package rpc

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/rpckit/route"
)

// DefaultMaxResponseSize caps decoded response bodies (10MB).
const DefaultMaxResponseSize int64 = 10 << 20

// ErrorHook receives every failed call. It must not block.
type ErrorHook func(ctx context.Context, key route.Key, err error)

// RequestHook can adjust an outgoing request right before it is sent,
// e.g. requestid.Propagate.
type RequestHook func(ctx context.Context, req *http.Request)

// Observer is told about every attempted exchange. status is 0 when no
// response was received.
type Observer interface {
	ObserveCall(ctx context.Context, key route.Key, status int, elapsed time.Duration, err error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client. Defaults to a client
// without timeout; see WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger for call failures. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnError registers a failure hook. Hooks run in registration order.
func WithOnError(h ErrorHook) Option {
	return func(c *Client) {
		if h != nil {
			c.onError = append(c.onError, h)
		}
	}
}

// WithRequestHook registers a hook run on each outgoing request.
func WithRequestHook(h RequestHook) Option {
	return func(c *Client) {
		if h != nil {
			c.requestHooks = append(c.requestHooks, h)
		}
	}
}

// WithHeader adds a header sent with every call. Per-call headers win.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.headers.Set(name, value)
	}
}

// WithHeaders adds several headers sent with every call.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers.Set(k, v)
		}
	}
}

// WithMaxResponseSize caps response bodies. Non-positive values are ignored.
func WithMaxResponseSize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResponseSize = n
		}
	}
}

// WithTimeout bounds every call, network exchange and decode included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithObserver sets the call observer, e.g. a metrics collector.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}
