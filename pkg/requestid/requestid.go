package requestid

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rpckit/pkg/logger"
)

// Header carries the request id in both directions: the route pipeline
// reads it from incoming requests, the rpc client forwards it.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type contextKey struct{}

// WithContext stores id in ctx.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Middleware accepts a well-formed incoming X-Request-ID or generates a new
// one, stores it in the request context and echoes it in the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !Valid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// Valid reports whether id is safe to accept from a client.
func Valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}

// Propagate copies the request id of ctx onto an outgoing request unless the
// request already carries one. It matches the rpc client's request hook.
func Propagate(ctx context.Context, req *http.Request) {
	if req.Header.Get(Header) != "" {
		return
	}
	if id := FromContext(ctx); id != "" {
		req.Header.Set(Header, id)
	}
}

// LoggerExtractor adds the request id of ctx to every log record.
// Register it with logger.WithContextExtractors.
func LoggerExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := FromContext(ctx); id != "" {
		return logger.RequestID(id), true
	}
	return slog.Attr{}, false
}
