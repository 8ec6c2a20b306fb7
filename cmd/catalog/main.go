// Command catalog is an example product catalog service built from typed
// routes, and a client that calls it through the same route definitions.
//
//	catalog serve   # run the HTTP service (default)
//	catalog demo    # call a running service at RPC_BASE_URL
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/rpckit/pkg/config"
	"github.com/dmitrymomot/rpckit/pkg/logger"
	"github.com/dmitrymomot/rpckit/pkg/requestid"
)

func main() {
	if err := config.LoadEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load .env", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode := "serve"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	var err error
	switch mode {
	case "serve":
		var cfg serverConfig
		if err = config.Load(&cfg); err == nil {
			err = runServer(ctx, cfg, newLogger(cfg.Logger))
		}
	case "demo":
		var cfg clientConfig
		if err = config.Load(&cfg); err == nil {
			err = runClient(ctx, cfg, newLogger(cfg.Logger))
		}
	default:
		slog.Error("Unknown command", slog.String("command", mode))
		os.Exit(2)
	}

	if err != nil {
		slog.Error("Application error", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg logger.Config) *slog.Logger {
	log := logger.New(
		logger.FromConfig(cfg),
		logger.WithContextExtractors(requestid.LoggerExtractor),
	)
	logger.SetAsDefault(log)
	return log
}
