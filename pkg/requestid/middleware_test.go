package requestid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rpckit/pkg/logger"
	"github.com/dmitrymomot/rpckit/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, header string) (ctxID, respID string) {
		t.Helper()
		h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxID = requestid.FromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(requestid.Header, header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		return ctxID, rec.Header().Get(requestid.Header)
	}

	t.Run("generates id when missing", func(t *testing.T) {
		t.Parallel()
		ctxID, respID := serve(t, "")
		assert.NotEmpty(t, ctxID)
		assert.Equal(t, ctxID, respID)
	})

	t.Run("keeps valid incoming id", func(t *testing.T) {
		t.Parallel()
		for _, id := range []string{"abc123", "ABC-123_xyz", "550e8400-e29b-41d4-a716-446655440000"} {
			ctxID, respID := serve(t, id)
			assert.Equal(t, id, ctxID)
			assert.Equal(t, id, respID)
		}
	})

	t.Run("replaces invalid incoming id", func(t *testing.T) {
		t.Parallel()
		invalid := []string{
			"test@request#id",
			"test request id",
			"test/request/id",
			"<script>alert(1)</script>",
			strings.Repeat("a", 129),
		}
		for _, id := range invalid {
			ctxID, respID := serve(t, id)
			assert.NotEqual(t, id, ctxID)
			assert.True(t, requestid.Valid(ctxID))
			assert.Equal(t, ctxID, respID)
		}
	})
}

func TestPropagate(t *testing.T) {
	t.Parallel()

	t.Run("copies id from context", func(t *testing.T) {
		t.Parallel()
		ctx := requestid.WithContext(context.Background(), "req-1")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestid.Propagate(ctx, req)
		assert.Equal(t, "req-1", req.Header.Get(requestid.Header))
	})

	t.Run("keeps explicit header", func(t *testing.T) {
		t.Parallel()
		ctx := requestid.WithContext(context.Background(), "req-1")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.Header, "explicit")
		requestid.Propagate(ctx, req)
		assert.Equal(t, "explicit", req.Header.Get(requestid.Header))
	})

	t.Run("no id in context", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestid.Propagate(context.Background(), req)
		assert.Empty(t, req.Header.Get(requestid.Header))
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(requestid.LoggerExtractor),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "req-42"), "handled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])

	_, ok := requestid.LoggerExtractor(context.Background())
	assert.False(t, ok)
}
