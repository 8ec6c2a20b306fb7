package rpc

import (
	"time"

	"github.com/dmitrymomot/rpckit/route"
)

// Config is the environment-driven client configuration.
type Config struct {
	BaseURL         string        `env:"RPC_BASE_URL,required"`
	Timeout         time.Duration `env:"RPC_TIMEOUT" envDefault:"10s"`
	MaxResponseSize int64         `env:"RPC_MAX_RESPONSE_SIZE" envDefault:"10485760"`
}

// NewFromConfig creates a Client from cfg; opts are applied after it.
func NewFromConfig(cfg Config, registry *route.Registry, opts ...Option) (*Client, error) {
	base := []Option{WithTimeout(cfg.Timeout), WithMaxResponseSize(cfg.MaxResponseSize)}
	return New(cfg.BaseURL, registry, append(base, opts...)...)
}
