package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultMaxBodySize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxBodySize = 1 << 20 // 1 MB

// ReadBody reads the whole request body, enforcing limit (DefaultMaxBodySize
// when limit <= 0). A request without a body yields a nil slice.
//
// An explicit non-JSON Content-Type is rejected. A missing Content-Type is
// accepted and the body is treated as JSON.
func ReadBody(r *http.Request, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}

	if ctx := r.Context(); ctx != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrFailedToReadBody, ctx.Err())
		default:
		}
	}

	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		mediaType := contentType
		if idx := strings.Index(contentType, ";"); idx != -1 {
			mediaType = strings.TrimSpace(contentType[:idx])
		}
		if !strings.EqualFold(mediaType, "application/json") {
			return nil, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
		}
	}

	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadBody, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, limit)
	}

	return body, nil
}

// DecodeJSON decodes a single JSON document from body into v.
// Unknown object keys are ignored; trailing data after the document is an error.
func DecodeJSON(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	if err := decoder.Decode(v); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			return fmt.Errorf("%w: malformed JSON at offset %d", ErrFailedToParseJSON, syntaxErr.Offset)
		case errors.As(err, &typeErr):
			return fmt.Errorf("%w: field %q must be %s", ErrFailedToParseJSON, typeErr.Field, typeErr.Type)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return fmt.Errorf("%w: unexpected end of JSON input", ErrFailedToParseJSON)
		default:
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
	}

	return nil
}
