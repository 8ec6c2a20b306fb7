package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/rpckit/binder"
	"github.com/dmitrymomot/rpckit/pkg/logger"
	"github.com/dmitrymomot/rpckit/route"
)

// Client performs calls against the routes of a Registry served at a base
// URL. It is immutable after New and safe for concurrent use.
type Client struct {
	baseURL         *url.URL
	registry        *route.Registry
	http            *http.Client
	logger          *slog.Logger
	headers         http.Header
	maxResponseSize int64
	timeout         time.Duration
	onError         []ErrorHook
	requestHooks    []RequestHook
	observer        Observer
}

// New returns a client for registry served at baseURL
// (e.g. "https://api.example.com" or "http://localhost:8080/v1").
func New(baseURL string, registry *route.Registry, opts ...Option) (*Client, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:         u,
		registry:        registry,
		http:            &http.Client{},
		logger:          slog.Default(),
		headers:         make(http.Header),
		maxResponseSize: DefaultMaxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Registry returns the registry the client checks calls against.
func (c *Client) Registry() *route.Registry {
	return c.registry
}

// Has reports whether the client may call path with method.
func (c *Client) Has(path string, method route.Method) bool {
	return c.registry.Has(path, method)
}

// request is the type-erased form of a call.
type request struct {
	key     route.Key
	body    any
	query   any
	params  any
	headers map[string]string
}

// newHTTPRequest builds the outgoing request. Only the method decides
// whether a JSON body and Content-Type are attached.
func (c *Client) newHTTPRequest(ctx context.Context, req request) (*http.Request, error) {
	path, err := expandPath(req.key.Path, req.params)
	if err != nil {
		return nil, errors.Join(ErrEncodeRequest, err)
	}

	base := *c.baseURL
	base.RawQuery, base.Fragment = "", ""
	u, err := url.Parse(base.String() + path)
	if err != nil {
		return nil, errors.Join(ErrEncodeRequest, err)
	}

	values, err := binder.Encode(req.query, "query")
	if err != nil {
		return nil, errors.Join(ErrEncodeRequest, err)
	}
	q := c.baseURL.Query()
	for k, vs := range values {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	var body io.Reader
	withBody := req.key.Method.HasBody()
	if withBody {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, errors.Join(ErrEncodeRequest, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.key.Method.String(), u.String(), body)
	if err != nil {
		return nil, errors.Join(ErrEncodeRequest, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if withBody {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range c.headers {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	for _, hook := range c.requestHooks {
		hook(ctx, httpReq)
	}

	return httpReq, nil
}

// exchange sends req and decodes a 2xx JSON response into out.
// Empty and null bodies are decode failures unless out is *route.None.
func (c *Client) exchange(ctx context.Context, req request, out any) (int, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize+1))
	if err != nil {
		return resp.StatusCode, errors.Join(ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, newStatusError(resp.StatusCode, data)
	}

	if int64(len(data)) > c.maxResponseSize {
		return resp.StatusCode, fmt.Errorf("%w: response exceeds %d bytes", ErrDecodeResponse, c.maxResponseSize)
	}
	// A route.None result needs no payload; any other result must be a
	// JSON document other than null.
	if _, ok := out.(*route.None); ok {
		return resp.StatusCode, nil
	}
	switch trimmed := bytes.TrimSpace(data); {
	case len(trimmed) == 0:
		return resp.StatusCode, fmt.Errorf("%w: empty response body", ErrDecodeResponse)
	case bytes.Equal(trimmed, []byte("null")):
		return resp.StatusCode, fmt.Errorf("%w: null response body", ErrDecodeResponse)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, errors.Join(ErrDecodeResponse, err)
	}
	return resp.StatusCode, nil
}

func newStatusError(code int, body []byte) *StatusError {
	e := &StatusError{Code: code}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Message = payload.Error
	}
	return e
}

func (c *Client) report(ctx context.Context, key route.Key, status int, err error) {
	c.logger.WarnContext(ctx, "remote call failed",
		logger.Component("rpc_client"),
		logger.Route(key.String()),
		logger.Status(status),
		logger.Error(err),
	)
	for _, hook := range c.onError {
		hook(ctx, key, err)
	}
}

// expandPath substitutes {name} placeholders with URL-escaped values taken
// from params (a struct with `path` tags or a map). chi-style patterns
// ({id:[0-9]+}) and ServeMux wildcards ({rest...}) are understood.
func expandPath(pattern string, params any) (string, error) {
	if !strings.Contains(pattern, "{") {
		return pattern, nil
	}

	values, err := binder.Encode(params, "path")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	rest := pattern
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated placeholder in %q", pattern)
		}
		end += start

		b.WriteString(rest[:start])
		name := rest[start+1 : end]
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		wildcard := strings.HasSuffix(name, "...")
		name = strings.TrimSuffix(name, "...")

		if name == "$" {
			rest = rest[end+1:]
			continue
		}

		value, ok := values[name]
		if !ok || len(value) == 0 || value[0] == "" {
			return "", fmt.Errorf("missing path parameter %q", name)
		}
		b.WriteString(escapeSegment(value[0], wildcard))
		rest = rest[end+1:]
	}
	return b.String(), nil
}

func escapeSegment(v string, wildcard bool) string {
	if !wildcard {
		return url.PathEscape(v)
	}
	parts := strings.Split(v, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
