package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rpckit/pkg/httpserver"
)

func startServer(t *testing.T, h http.Handler, opts ...httpserver.Option) (*httpserver.Server, string, context.CancelFunc, <-chan error) {
	t.Helper()

	started := make(chan string, 1)
	opts = append([]httpserver.Option{
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithShutdownTimeout(time.Second),
		httpserver.WithOnStart(func(addr string) { started <- addr }),
	}, opts...)
	srv := httpserver.New(opts...)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()

	select {
	case addr := <-started:
		return srv, addr, cancel, done
	case err := <-done:
		cancel()
		require.FailNow(t, "server did not start", "%v", err)
	case <-time.After(2 * time.Second):
		cancel()
		require.FailNow(t, "server did not start in time")
	}
	return nil, "", cancel, done
}

func TestRunAndCancel(t *testing.T) {
	t.Parallel()

	srv, addr, cancel, done := startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	assert.Equal(t, addr, srv.Addr())

	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not return")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	t.Parallel()

	srv, _, cancel, done := startServer(t, nil)
	defer cancel()

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not return")
	}
}

func TestShutdownBeforeRun(t *testing.T) {
	t.Parallel()
	srv := httpserver.New()
	assert.NoError(t, srv.Shutdown(context.Background()))
	assert.Empty(t, srv.Addr())
}

func TestRunTwice(t *testing.T) {
	t.Parallel()

	srv, _, cancel, done := startServer(t, nil)
	defer func() {
		cancel()
		<-done
	}()

	err := srv.Run(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)
}

func TestStartError(t *testing.T) {
	t.Parallel()
	srv := httpserver.New(httpserver.WithAddr("256.0.0.1:bad"))
	err := srv.Run(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()
	tests := map[string]func(){
		"addr":     func() { httpserver.WithAddr("") },
		"read":     func() { httpserver.WithReadTimeout(0) },
		"write":    func() { httpserver.WithWriteTimeout(-time.Second) },
		"idle":     func() { httpserver.WithIdleTimeout(0) },
		"shutdown": func() { httpserver.WithShutdownTimeout(0) },
		"on start": func() { httpserver.WithOnStart(nil) },
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Panics(t, fn)
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	srv := httpserver.NewFromConfig(httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, nil) }()

	require.Eventually(t, func() bool { return srv.Addr() != "" }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		checks []func(context.Context) error
		status int
		body   string
	}{
		{"liveness", nil, http.StatusOK, `{"status":"alive"}`},
		{
			"ready",
			[]func(context.Context) error{func(context.Context) error { return nil }},
			http.StatusOK, `{"status":"ready"}`,
		},
		{
			"not ready",
			[]func(context.Context) error{
				func(context.Context) error { return nil },
				func(context.Context) error { return errors.New("redis down") },
			},
			http.StatusServiceUnavailable, `{"status":"not_ready"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			httpserver.HealthCheckHandler(nil, tt.checks...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
