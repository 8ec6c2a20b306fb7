package route_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rpckit/handler"
	"github.com/dmitrymomot/rpckit/route"
	"github.com/dmitrymomot/rpckit/validate"
)

const validID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

func sessionFrom(header string) route.SessionFunc[user] {
	return func(r *http.Request) (*user, error) {
		id := r.Header.Get(header)
		if id == "" {
			return nil, nil
		}
		return &user{ID: id}, nil
	}
}

func TestSessionGate(t *testing.T) {
	t.Parallel()

	newRoute := func(required bool, deriver route.SessionFunc[user], called *atomic.Bool) http.Handler {
		return route.New(route.Config[createProduct, route.None, route.None, user, map[string]any]{
			Method:                 route.MethodPost,
			Path:                   "/p",
			Strict:                 true,
			RequiresAuthentication: required,
			Validators: route.Validators[createProduct, route.None, route.None]{
				Body: validate.Struct[createProduct](nil),
			},
			Session: deriver,
			Handler: func(_ context.Context, req route.Request[createProduct, route.None, route.None, user]) (map[string]any, error) {
				called.Store(true)
				return map[string]any{"has_session": req.Session != nil}, nil
			},
		})
	}

	t.Run("missing required session is 401 before validation", func(t *testing.T) {
		t.Parallel()
		var called atomic.Bool
		rec := serve(newRoute(true, sessionFrom("X-User"), &called), http.MethodPost, "/p", `{"name":""}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		assert.False(t, called.Load())
	})

	t.Run("present session is passed to handler", func(t *testing.T) {
		t.Parallel()
		var called atomic.Bool
		h := route.New(route.Config[route.None, route.None, route.None, user, user]{
			Method:                 route.MethodGet,
			Path:                   "/me",
			RequiresAuthentication: true,
			Session:                sessionFrom("X-User"),
			Handler: func(_ context.Context, req route.Request[route.None, route.None, route.None, user]) (user, error) {
				called.Store(true)
				return *req.Session, nil
			},
		})

		r := newRequest(http.MethodGet, "/me", "")
		r.Header.Set("X-User", "u1")
		rec := record(h, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ID":"u1"}`, rec.Body.String())
		assert.True(t, called.Load())
	})

	t.Run("optional session may be absent", func(t *testing.T) {
		t.Parallel()
		var called atomic.Bool
		rec := serve(newRoute(false, sessionFrom("X-User"), &called), http.MethodPost, "/p", `{"name":"Lamp"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"has_session":false}`, rec.Body.String())
		assert.True(t, called.Load())
	})

	t.Run("no deriver ignores requires authentication", func(t *testing.T) {
		t.Parallel()
		var called atomic.Bool
		rec := serve(newRoute(true, nil, &called), http.MethodPost, "/p", `{"name":"Lamp"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called.Load())
	})

	t.Run("deriver error is opaque 500", func(t *testing.T) {
		t.Parallel()
		var called atomic.Bool
		failing := func(*http.Request) (*user, error) { return nil, errors.New("redis: connection refused") }
		rec := serve(newRoute(true, failing, &called), http.MethodPost, "/p", `{"name":"Lamp"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, handler.MessageInternal, decodeBody(t, rec)["error"])
		assert.False(t, called.Load())
	})
}

func TestValidationGate_Strict(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	rt := route.New(route.Config[createProduct, listQuery, productParams, route.None, map[string]any]{
		Method: route.MethodPut,
		Path:   "/products/{id}",
		Strict: true,
		Validators: route.Validators[createProduct, listQuery, productParams]{
			Body:   validate.Struct[createProduct](nil),
			Query:  validate.Struct[listQuery](nil),
			Params: validate.Struct[productParams](nil),
		},
		PathParam: func(r *http.Request, name string) string {
			if name != "id" {
				return ""
			}
			return strings.TrimPrefix(r.URL.Path, "/products/")
		},
		Handler: func(_ context.Context, req route.Request[createProduct, listQuery, productParams, route.None]) (map[string]any, error) {
			calls.Add(1)
			return map[string]any{"name": req.Data.Name, "limit": req.Query.Limit, "id": req.Params.ID}, nil
		},
	})

	tests := []struct {
		name    string
		target  string
		body    string
		status  int
		message string
		details bool
	}{
		{"all valid", "/products/" + validID + "?limit=10", `{"name":"Lamp","price":5}`, http.StatusOK, "", false},
		{"invalid body", "/products/" + validID, `{"name":"L"}`, http.StatusBadRequest, "Invalid request data received for 'body'", true},
		{"malformed body", "/products/" + validID, `{"name":`, http.StatusBadRequest, "Invalid request data received for 'body'", false},
		{"empty body", "/products/" + validID, "", http.StatusBadRequest, "Invalid request data received for 'body'", false},
		{"invalid query", "/products/" + validID + "?limit=500", `{"name":"Lamp"}`, http.StatusBadRequest, "Invalid request data received for 'query'", true},
		{"undecodable query", "/products/" + validID + "?limit=ten", `{"name":"Lamp"}`, http.StatusBadRequest, "Invalid request data received for 'query'", false},
		{"invalid params", "/products/nope", `{"name":"Lamp"}`, http.StatusBadRequest, "Invalid request data received for 'params'", true},
		{"body checked first", "/products/nope?limit=500", `{}`, http.StatusBadRequest, "Invalid request data received for 'body'", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := calls.Load()
			rec := serve(rt, http.MethodPut, tt.target, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.status == http.StatusOK {
				assert.Equal(t, before+1, calls.Load())
				assert.JSONEq(t, `{"name":"Lamp","limit":10,"id":"`+validID+`"}`, rec.Body.String())
				return
			}

			assert.Equal(t, before, calls.Load(), "handler must not run")
			body := decodeBody(t, rec)
			assert.Equal(t, tt.message, body["error"])
			if tt.details {
				assert.NotEmpty(t, body["details"])
			} else {
				assert.Nil(t, body["details"])
			}
		})
	}
}

func TestValidationGate_StrictDetailsDoNotEchoInput(t *testing.T) {
	t.Parallel()

	rt := route.New(route.Config[createProduct, route.None, route.None, route.None, route.None]{
		Method: route.MethodPost,
		Path:   "/p",
		Strict: true,
		Validators: route.Validators[createProduct, route.None, route.None]{
			Body: validate.Struct[createProduct](nil),
		},
		Handler: func(context.Context, route.Request[createProduct, route.None, route.None, route.None]) (route.None, error) {
			return route.None{}, nil
		},
	})

	rec := serve(rt, http.MethodPost, "/p", `{"name":"X","price":-42}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "-42")
	details := decodeBody(t, rec)["details"].(map[string]any)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "price")
}

func TestValidationGate_Lenient(t *testing.T) {
	t.Parallel()

	type seen struct {
		Body   bool `json:"body"`
		Query  bool `json:"query"`
		Params bool `json:"params"`
	}

	rt := route.New(route.Config[createProduct, listQuery, productParams, route.None, seen]{
		Method: route.MethodPost,
		Path:   "/products/{id}",
		Validators: route.Validators[createProduct, listQuery, productParams]{
			Body:   validate.Struct[createProduct](nil),
			Query:  validate.Struct[listQuery](nil),
			Params: validate.Struct[productParams](nil),
		},
		PathParam: func(r *http.Request, _ string) string {
			return strings.TrimPrefix(r.URL.Path, "/products/")
		},
		Handler: func(_ context.Context, req route.Request[createProduct, listQuery, productParams, route.None]) (seen, error) {
			return seen{Body: req.Data != nil, Query: req.Query != nil, Params: req.Params != nil}, nil
		},
	})

	tests := []struct {
		name   string
		target string
		body   string
		want   string
	}{
		{"all valid", "/products/" + validID + "?limit=5", `{"name":"Lamp"}`, `{"body":true,"query":true,"params":true}`},
		{"body fails", "/products/" + validID, `{"name":""}`, `{"body":false,"query":true,"params":true}`},
		{"query fails", "/products/" + validID + "?sort=color", `{"name":"Lamp"}`, `{"body":true,"query":false,"params":true}`},
		{"params fail", "/products/42", `{"name":"Lamp"}`, `{"body":true,"query":true,"params":false}`},
		{"everything fails", "/products/42?limit=500", `not json`, `{"body":false,"query":false,"params":false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(rt, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestValidationGate_UnconfiguredSourcesStayNil(t *testing.T) {
	t.Parallel()

	rt := route.New(route.Config[createProduct, listQuery, productParams, route.None, []bool]{
		Method: route.MethodPost,
		Path:   "/p",
		Strict: true,
		Validators: route.Validators[createProduct, listQuery, productParams]{
			Query: validate.Decode[listQuery](),
		},
		Handler: func(_ context.Context, req route.Request[createProduct, listQuery, productParams, route.None]) ([]bool, error) {
			return []bool{req.Data != nil, req.Query != nil, req.Params != nil}, nil
		},
	})

	rec := serve(rt, http.MethodPost, "/p?limit=3", `{"name":"ignored"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[false,true,false]`, rec.Body.String())
}

func TestValidationGate_BodyLimit(t *testing.T) {
	t.Parallel()

	rt := route.New(route.Config[createProduct, route.None, route.None, route.None, route.None]{
		Method:      route.MethodPost,
		Path:        "/p",
		Strict:      true,
		MaxBodySize: 16,
		Validators: route.Validators[createProduct, route.None, route.None]{
			Body: validate.Decode[createProduct](),
		},
		Handler: func(context.Context, route.Request[createProduct, route.None, route.None, route.None]) (route.None, error) {
			return route.None{}, nil
		},
	})

	rec := serve(rt, http.MethodPost, "/p", `{"name":"`+strings.Repeat("x", 64)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request data received for 'body'", decodeBody(t, rec)["error"])

	r := newRequest(http.MethodPost, "/p", `{"name":"x"}`)
	r.Header.Set("Content-Type", "text/plain")
	rec = record(rt, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidationGate_ValidatorReceivesContext(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}
	var got atomic.Value

	rt := route.New(route.Config[route.None, route.None, route.None, route.None, route.None]{
		Method: route.MethodGet,
		Path:   "/p",
		Validators: route.Validators[route.None, route.None, route.None]{
			Query: validate.Func[route.None](func(ctx context.Context, in validate.Input) (route.None, error) {
				got.Store(ctx.Value(ctxKey{}))
				assert.Equal(t, validate.Query, in.Source)
				return route.None{}, nil
			}),
		},
		Handler: func(context.Context, route.Request[route.None, route.None, route.None, route.None]) (route.None, error) {
			return route.None{}, nil
		},
	})

	r := newRequest(http.MethodGet, "/p", "")
	r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, "v"))
	record(rt, r)
	assert.Equal(t, "v", got.Load())
}
