package validate

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Numeric covers the types accepted by Min and Max.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Rule is a single check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error FieldError
}

// Apply runs every rule and returns Errors for the failed ones, or nil.
func Apply(rules ...Rule) error {
	var errs Errors
	for _, rule := range rules {
		if rule.Check != nil && !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// Rules returns a Validator that decodes the input into T and applies the
// rules built by fn.
//
// Example:
//
//	validate.Rules(func(q SearchQuery) []validate.Rule {
//		return []validate.Rule{
//			validate.Required("q", q.Search),
//			validate.Max("page", q.Page, 100),
//		}
//	})
func Rules[T any](fn func(T) []Rule) Validator[T] {
	return Func[T](func(_ context.Context, in Input) (T, error) {
		var v T
		if err := in.Decode(&v); err != nil {
			var zero T
			return zero, err
		}
		if fn != nil {
			if err := Apply(fn(v)...); err != nil {
				var zero T
				return zero, err
			}
		}
		return v, nil
	})
}

// Required checks that a string is not blank.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: FieldError{Field: field, Message: "field is required"},
	}
}

// MinLen checks the rune length of a string.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: FieldError{Field: field, Message: fmt.Sprintf("must be at least %d characters long", min)},
	}
}

// MaxLen checks the rune length of a string.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters long", max)},
	}
}

// Min checks that value >= min.
func Min[T Numeric](field string, value, min T) Rule {
	return Rule{
		Check: func() bool { return value >= min },
		Error: FieldError{Field: field, Message: fmt.Sprintf("must be at least %v", min)},
	}
}

// Max checks that value <= max.
func Max[T Numeric](field string, value, max T) Rule {
	return Rule{
		Check: func() bool { return value <= max },
		Error: FieldError{Field: field, Message: fmt.Sprintf("must be at most %v", max)},
	}
}

// OneOf checks that value is one of the allowed values.
func OneOf[T comparable](field string, value T, allowed ...T) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: FieldError{Field: field, Message: fmt.Sprintf("must be one of %v", allowed)},
	}
}

// Match checks a string against a regular expression.
func Match(field, value string, re *regexp.Regexp) Rule {
	return Rule{
		Check: func() bool { return re != nil && re.MatchString(value) },
		Error: FieldError{Field: field, Message: "has an invalid format"},
	}
}
