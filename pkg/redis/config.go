package redis

import "time"

// Config is the environment-driven connection configuration.
type Config struct {
	// ConnectionURL has the form redis://:password@localhost:6379/0.
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	// SessionPrefix namespaces session tokens stored by session.RedisStore.
	SessionPrefix string        `env:"REDIS_SESSION_PREFIX" envDefault:"session:"`
	SessionTTL    time.Duration `env:"REDIS_SESSION_TTL" envDefault:"24h"`
}
