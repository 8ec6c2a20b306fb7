package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Values binds values into v using the given struct tag (e.g. "query", "path").
// v must be a non-nil pointer to a struct, map[string]string,
// map[string][]string or url.Values.
// bindErr is wrapped into every returned error.
func Values(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: %w: target must be a non-nil pointer", bindErr, ErrInvalidTarget)
	}

	rv = rv.Elem()
	switch rv.Kind() {
	case reflect.Struct:
		return bindStruct(rv, tagName, values, bindErr)
	case reflect.Map:
		return bindMap(rv, values, bindErr)
	default:
		return fmt.Errorf("%w: %w: unsupported target %s", bindErr, ErrInvalidTarget, rv.Type())
	}
}

func bindStruct(rv reflect.Value, tagName string, values map[string][]string, bindErr error) error {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		paramName, skip := parseFieldTag(fieldType, tagName)
		if skip {
			continue
		}

		fieldValues, exists := values[paramName]
		if !exists || len(fieldValues) == 0 {
			continue
		}

		if err := setFieldValue(field, fieldType.Type, fieldValues); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, paramName, err)
		}
	}

	return nil
}

func bindMap(rv reflect.Value, values map[string][]string, bindErr error) error {
	mt := rv.Type()
	if mt.Key().Kind() != reflect.String {
		return fmt.Errorf("%w: %w: map key must be string", bindErr, ErrInvalidTarget)
	}

	if rv.IsNil() {
		rv.Set(reflect.MakeMapWithSize(mt, len(values)))
	}

	elem := mt.Elem()
	for key, vals := range values {
		switch {
		case elem.Kind() == reflect.String:
			if len(vals) == 0 {
				continue
			}
			rv.SetMapIndex(reflect.ValueOf(key).Convert(mt.Key()), reflect.ValueOf(vals[0]).Convert(elem))
		case elem.Kind() == reflect.Slice && elem.Elem().Kind() == reflect.String:
			cp := make([]string, len(vals))
			copy(cp, vals)
			rv.SetMapIndex(reflect.ValueOf(key).Convert(mt.Key()), reflect.ValueOf(cp).Convert(elem))
		default:
			return fmt.Errorf("%w: %w: unsupported map value %s", bindErr, ErrInvalidTarget, elem)
		}
	}

	return nil
}

// parseFieldTag returns the parameter name for a struct field and whether to skip it.
func parseFieldTag(field reflect.StructField, tagName string) (paramName string, skip bool) {
	tag := field.Tag.Get(tagName)
	if tag == "" {
		return strings.ToLower(field.Name), false
	}
	if tag == "-" {
		return "", true
	}

	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func setFieldValue(field reflect.Value, fieldType reflect.Type, values []string) error {
	if fieldType.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), values)
	}

	if fieldType.Kind() == reflect.Slice {
		return setSliceValue(field, fieldType, values)
	}

	if len(values) == 0 {
		return nil
	}
	value := values[0]

	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value")
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value")
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value")
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			switch strings.ToLower(value) {
			case "on", "yes":
				b = true
			case "off", "no", "":
				b = false
			default:
				return fmt.Errorf("invalid bool value")
			}
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}

	return nil
}

func setSliceValue(field reflect.Value, fieldType reflect.Type, values []string) error {
	elemType := fieldType.Elem()

	// Only a lone value is split on commas, so ?tag=a,b and ?tag=a&tag=b
	// bind alike while repeated values keep their commas.
	all := values
	if len(values) == 1 {
		all = strings.Split(values[0], ",")
	}

	slice := reflect.MakeSlice(fieldType, len(all), len(all))
	for i, value := range all {
		if err := setFieldValue(slice.Index(i), elemType, []string{strings.TrimSpace(value)}); err != nil {
			return err
		}
	}

	field.Set(slice)
	return nil
}
