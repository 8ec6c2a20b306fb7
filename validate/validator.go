package validate

import "context"

// Validator parses the raw input of one field source into T.
type Validator[T any] interface {
	Parse(ctx context.Context, in Input) (T, error)
}

// Func adapts a plain function to the Validator interface.
type Func[T any] func(ctx context.Context, in Input) (T, error)

// Parse calls f.
func (f Func[T]) Parse(ctx context.Context, in Input) (T, error) {
	return f(ctx, in)
}

// Decode returns a Validator that only decodes the input into T.
func Decode[T any]() Validator[T] {
	return Func[T](func(_ context.Context, in Input) (T, error) {
		var v T
		if err := in.Decode(&v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	})
}
