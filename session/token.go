package session

import (
	"net/http"
	"strings"
)

// TokenSource extracts the raw session token from a request; "" means none.
type TokenSource func(r *http.Request) string

// FromHeader reads the token from header name, stripping prefix
// (case-insensitive) when present.
func FromHeader(name, prefix string) TokenSource {
	return func(r *http.Request) string {
		value := strings.TrimSpace(r.Header.Get(name))
		if prefix != "" && len(value) >= len(prefix) && strings.EqualFold(value[:len(prefix)], prefix) {
			value = strings.TrimSpace(value[len(prefix):])
		}
		return value
	}
}

// FromBearer reads "Authorization: Bearer <token>". A non-bearer
// Authorization value yields no token.
func FromBearer() TokenSource {
	return func(r *http.Request) string {
		const prefix = "Bearer "
		value := strings.TrimSpace(r.Header.Get("Authorization"))
		if len(value) < len(prefix) || !strings.EqualFold(value[:len(prefix)], prefix) {
			return ""
		}
		return strings.TrimSpace(value[len(prefix):])
	}
}

// FromCookie reads the token from the named cookie.
func FromCookie(name string) TokenSource {
	return func(r *http.Request) string {
		c, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return c.Value
	}
}

// FirstOf tries each source in order and returns the first token found.
func FirstOf(sources ...TokenSource) TokenSource {
	return func(r *http.Request) string {
		for _, src := range sources {
			if src == nil {
				continue
			}
			if token := src(r); token != "" {
				return token
			}
		}
		return ""
	}
}
