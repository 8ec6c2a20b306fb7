// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run listens on the configured address, serves until the context is
// cancelled or SIGINT/SIGTERM arrives, then calls http.Server.Shutdown
// bounded by the shutdown timeout. Start and shutdown failures wrap
// ErrStart and ErrShutdown.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves JSON liveness/readiness probes, e.g. backed by
// redis.Healthcheck.
package httpserver
