package validate

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/rpckit/binder"
)

// Input is the raw data of a single field source.
type Input struct {
	Source Source
	// Request is the incoming request; may be nil in tests.
	Request *http.Request
	// Body holds the raw JSON payload for the body source.
	Body []byte
	// Query holds the parsed query string for the query source.
	Query url.Values
	// PathParam resolves path parameters for the params source.
	PathParam binder.PathExtractor
}

// Decode moves the raw data into v using the binder matching the source:
// JSON for the body, `query` tags for the query string and `path` tags for
// path parameters.
func (in Input) Decode(v any) error {
	var err error
	switch in.Source {
	case Body:
		err = binder.DecodeJSON(in.Body, v)
	case Query:
		err = binder.QueryValues(in.Query, v)
	case Params:
		extractor := in.PathParam
		if extractor == nil {
			extractor = binder.StdPathValue
		}
		req := in.Request
		if req == nil {
			req = &http.Request{}
		}
		err = binder.Path(req, extractor, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, in.Source)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
