package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rpckit/handler"
	"github.com/dmitrymomot/rpckit/pkg/logger"
)

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status string `json:"status"`
}

// HealthCheckHandler answers liveness and readiness probes with JSON.
// Without checks it reports {"status":"alive"}. Otherwise every check runs
// with the request context: all passing gives 200 {"status":"ready"}, the
// first failure gives 503 {"status":"not_ready"}.
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			_ = handler.Write(w, r, handler.JSON(HealthStatus{Status: "alive"}))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err), logger.Component("httpserver"))
				_ = handler.Write(w, r, handler.JSON(
					HealthStatus{Status: "not_ready"},
					handler.WithJSONStatus(http.StatusServiceUnavailable),
				))
				return
			}
		}

		_ = handler.Write(w, r, handler.JSON(HealthStatus{Status: "ready"}))
	}
}
