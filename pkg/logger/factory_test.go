package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rpckit/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_Defaults(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))

	log.Debug("dropped")
	assert.Zero(t, buf.Len())

	log.Info("kept")
	entry := decodeLine(t, buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "kept", entry["msg"])
}

func TestNew_Formats(t *testing.T) {
	t.Run("last format option wins", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithJSONFormatter())
		log.Info("json")
		assert.Equal(t, "json", decodeLine(t, buf)["msg"])
	})

	t.Run("text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText))
		log.Info("plain", logger.Component("rpc_client"))
		assert.Contains(t, buf.String(), "msg=plain")
		assert.Contains(t, buf.String(), "component=rpc_client")
	})

	t.Run("unknown format panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})
}

func TestNew_LevelAndAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(slog.LevelWarn),
		logger.WithAttr(slog.String("service", "catalog")),
	)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	entry := decodeLine(t, buf)
	assert.Equal(t, "catalog", entry["service"])
}

func TestNew_ContextExtractors(t *testing.T) {
	type ctxKey struct{}
	tenant := func(ctx context.Context) (slog.Attr, bool) {
		v, ok := ctx.Value(ctxKey{}).(string)
		return slog.String("tenant", v), ok
	}

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(nil, tenant),
	).With(slog.String("static", "yes")).WithGroup("req")

	log.InfoContext(context.WithValue(context.Background(), ctxKey{}, "acme"), "scoped")
	entry := decodeLine(t, buf)
	assert.Equal(t, "yes", entry["static"])
	group, ok := entry["req"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "acme", group["tenant"])

	buf.Reset()
	log.InfoContext(context.Background(), "unscoped")
	assert.NotContains(t, buf.String(), "tenant")
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("through default")

	assert.Equal(t, "through default", decodeLine(t, buf)["msg"])
}
