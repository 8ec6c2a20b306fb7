package validate

// Source identifies where a validated value comes from.
type Source string

const (
	Body   Source = "body"
	Query  Source = "query"
	Params Source = "params"
)

// Sources lists every supported source in gate order.
var Sources = []Source{Body, Query, Params}

func (s Source) String() string { return string(s) }

// Valid reports whether s is one of the supported sources.
func (s Source) Valid() bool {
	switch s {
	case Body, Query, Params:
		return true
	}
	return false
}
