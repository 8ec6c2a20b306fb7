// Package binder extracts raw request data for each field source and moves
// it in and out of typed values.
//
// The server side reads a size-limited JSON body (ReadBody, DecodeJSON) and
// binds query strings and path parameters into structs using `query:"..."`
// and `path:"..."` tags (Query, Path, Values). The client side performs the
// inverse with Encode, turning structs, maps and url.Values into url.Values
// so that every key/value pair is appended independently.
//
// Supported field types:
//   - Basic types: string, int*, uint*, float32, float64, bool
//   - Slices of basic types for multi-value parameters. A single value is
//     split on commas; repeated values are taken as-is. Encode writes one
//     pair per element, so a one-element slice whose element contains a
//     comma does not survive the round trip.
//   - Pointers for optional fields
//
// Example:
//
//	type ListProductsQuery struct {
//		Search string   `query:"q"`
//		Page   int      `query:"page"`
//		Tags   []string `query:"tag"` // ?tag=a&tag=b or ?tag=a,b
//		Active *bool    `query:"active"`
//	}
//
//	var q ListProductsQuery
//	if err := binder.Query(r, &q); err != nil {
//		// errors.Is(err, binder.ErrFailedToParseQuery)
//	}
package binder
