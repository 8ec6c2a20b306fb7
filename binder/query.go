package binder

import (
	"net/http"
	"net/url"
)

// Query binds the request's query string into v.
//
// It supports struct tags for custom parameter names:
//   - `query:"name"` - binds to query parameter "name"
//   - `query:"-"` - skips the field
//   - `query:"name,omitempty"` - same as query:"name" for parsing
//
// v may also be a *map[string]string, *map[string][]string or *url.Values.
func Query(r *http.Request, v any) error {
	return QueryValues(r.URL.Query(), v)
}

// QueryValues binds already parsed query values into v.
func QueryValues(values url.Values, v any) error {
	return Values(v, "query", values, ErrFailedToParseQuery)
}
