package binder

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Encode converts v into url.Values using the given struct tag.
// It is the inverse of Values and is used by clients to build query strings
// and path parameter sets.
//
// v may be a struct (or pointer to one), a map with string keys, or url.Values.
// Slice values produce one entry per element; a nil pointer or nil map yields
// empty values. Fields tagged with ",omitempty" are skipped when zero.
func Encode(v any, tagName string) (url.Values, error) {
	out := url.Values{}
	if v == nil {
		return out, nil
	}

	if values, ok := v.(url.Values); ok {
		for k, vals := range values {
			for _, val := range vals {
				out.Add(k, val)
			}
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return out, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return out, encodeStruct(out, rv, tagName)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key must be string", ErrFailedToEncode)
		}
		iter := rv.MapRange()
		for iter.Next() {
			if err := addValue(out, iter.Key().String(), iter.Value()); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %s", ErrFailedToEncode, rv.Type())
	}
}

func encodeStruct(out url.Values, rv reflect.Value, tagName string) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, skip := parseFieldTag(field, tagName)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if strings.Contains(field.Tag.Get(tagName), ",omitempty") && fv.IsZero() {
			continue
		}
		if err := addValue(out, name, fv); err != nil {
			return err
		}
	}
	return nil
}

func addValue(out url.Values, key string, rv reflect.Value) error {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	if s, ok := rv.Interface().(fmt.Stringer); ok {
		out.Add(key, s.String())
		return nil
	}

	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := range rv.Len() {
			if err := addValue(out, key, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}

	s, err := formatScalar(rv)
	if err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrFailedToEncode, key, err)
	}
	out.Add(key, s)
	return nil
}

func formatScalar(rv reflect.Value) (string, error) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	default:
		return "", fmt.Errorf("unsupported type %s", rv.Kind())
	}
}
