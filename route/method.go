package route

import (
	"fmt"
	"net/http"
	"strings"
)

// Method is an HTTP method supported by routes.
type Method string

const (
	MethodGet     Method = http.MethodGet
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodDelete  Method = http.MethodDelete
	MethodPatch   Method = http.MethodPatch
	MethodOptions Method = http.MethodOptions
)

// Methods lists every supported method.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodOptions}

// ParseMethod converts s (case-insensitive) into a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
	return m, nil
}

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodOptions:
		return true
	}
	return false
}

// HasBody reports whether requests with this method carry a JSON body.
// The method alone decides it, never the presence of a body value.
func (m Method) HasBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	}
	return false
}

func (m Method) String() string { return string(m) }
