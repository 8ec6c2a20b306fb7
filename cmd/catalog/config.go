package main

import (
	"time"

	"github.com/dmitrymomot/rpckit/pkg/httpserver"
	"github.com/dmitrymomot/rpckit/pkg/logger"
	"github.com/dmitrymomot/rpckit/pkg/metrics"
	"github.com/dmitrymomot/rpckit/pkg/redis"
	"github.com/dmitrymomot/rpckit/rpc"
)

const (
	storeMemory = "memory"
	storeRedis  = "redis"
)

type serverConfig struct {
	Logger  logger.Config
	HTTP    httpserver.Config
	Redis   redis.Config
	Metrics metrics.Config

	// SessionStore is "memory" or "redis".
	SessionStore string        `env:"SESSION_STORE" envDefault:"memory"`
	JWTSecret    string        `env:"JWT_SECRET,required"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	Verbose      bool          `env:"ROUTE_VERBOSE" envDefault:"false"`
}

type clientConfig struct {
	Logger logger.Config
	RPC    rpc.Config
	User   string `env:"CATALOG_USER" envDefault:"demo"`
}
