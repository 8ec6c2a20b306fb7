package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/rpckit/pkg/httpserver"
	"github.com/dmitrymomot/rpckit/pkg/logger"
	"github.com/dmitrymomot/rpckit/pkg/metrics"
	"github.com/dmitrymomot/rpckit/pkg/redis"
	"github.com/dmitrymomot/rpckit/pkg/requestid"
	"github.com/dmitrymomot/rpckit/route"
	"github.com/dmitrymomot/rpckit/session"
)

// mount registers every route of reg on r.
func mount(r chi.Router, reg *route.Registry) {
	reg.Each(func(d route.Descriptor, h http.Handler) {
		r.Method(d.Method.String(), d.Path, h)
	})
}

func newRouter(reg *route.Registry, health http.Handler, metricsPath string, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestid.Middleware)

	r.Get("/health/live", httpserver.HealthCheckHandler(nil))
	if health != nil {
		r.Handle("/health/ready", health)
	}
	if metricsHandler != nil {
		r.Handle(metricsPath, metricsHandler)
	}

	mount(r, reg)
	return r
}

func runServer(ctx context.Context, cfg serverConfig, log *slog.Logger) error {
	signer, err := session.NewSigner([]byte(cfg.JWTSecret))
	if err != nil {
		return err
	}

	d := deps{
		catalog:    newCatalog(),
		sessionTTL: cfg.SessionTTL,
		signer:     signer,
		logger:     log,
		verbose:    cfg.Verbose,
	}

	var checks []func(context.Context) error
	switch cfg.SessionStore {
	case storeMemory:
		d.sessions = session.NewMemoryStore[User]()
	case storeRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		d.sessions = session.NewRedisStore[User](client, cfg.Redis.SessionPrefix)
		checks = append(checks, redis.Healthcheck(client))
	default:
		return fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		provider, err := metrics.NewPrometheus(cfg.Metrics)
		if err != nil {
			return err
		}
		defer func() {
			if err := provider.Shutdown(context.Background()); err != nil {
				log.Error("metrics shutdown", logger.Error(err))
			}
		}()

		recorder, err := metrics.NewRecorder(provider.Meter())
		if err != nil {
			return err
		}
		d.observer = recorder
		metricsHandler = provider.Handler()
	}

	reg, err := newAPI(d).registry()
	if err != nil {
		return err
	}
	for _, rd := range reg.Routes() {
		log.Debug("route registered", logger.Method(rd.Method.String()), logger.Route(rd.Path))
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(reg, httpserver.HealthCheckHandler(log, checks...), cfg.Metrics.Path, metricsHandler))
}
