// Package validate defines the parse-or-fail capability used by route
// validation gates, and adapters for the schema libraries the module supports.
//
// A Validator receives the raw Input of one field source (JSON body, query
// string or path parameters) and returns either a parsed value or an error.
// Route code never depends on a concrete schema library; each library gets an
// adapter:
//
//   - Struct: decodes the input and checks go-playground/validator tags.
//   - Rules: decodes the input and applies a list of Rule checks.
//   - Func: any custom parse function.
//   - Decode: decodes the input without further checks.
//
// Example:
//
//	type CreateProduct struct {
//		Name  string  `json:"name" validate:"required,min=2"`
//		Price float64 `json:"price" validate:"gt=0"`
//	}
//
//	body := validate.Struct[CreateProduct](validate.New())
//
// Failures are reported as Errors (field/message pairs that never contain the
// submitted values) or as decode errors wrapped with ErrDecode.
package validate
