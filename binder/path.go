package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// PathExtractor returns the value of a single path parameter.
// chi.URLParam satisfies it directly.
type PathExtractor func(r *http.Request, name string) string

// StdPathValue reads path parameters set by net/http's ServeMux patterns.
func StdPathValue(r *http.Request, name string) string {
	return r.PathValue(name)
}

// Path binds path parameters into v, a pointer to a struct with `path:"..."`
// tags. The extractor is called once per tagged field; an empty result leaves
// the field at its zero value.
//
// Example with chi router:
//
//	type ProductParams struct {
//		ID string `path:"id"`
//	}
//
//	var p ProductParams
//	err := binder.Path(r, chi.URLParam, &p)
func Path(r *http.Request, extractor PathExtractor, v any) error {
	if extractor == nil {
		return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %w: target must be a pointer to struct", ErrFailedToParsePath, ErrInvalidTarget)
	}

	rt := rv.Elem().Type()
	values := make(map[string][]string, rt.NumField())
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, skip := parseFieldTag(field, "path")
		if skip {
			continue
		}
		if value := extractor(r, name); value != "" {
			values[name] = []string{value}
		}
	}

	return Values(v, "path", values, ErrFailedToParsePath)
}
