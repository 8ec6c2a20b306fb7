package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache keeps one parsed copy per configuration type.
type cache struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var (
	loaded = &cache{values: make(map[reflect.Type]any)}

	defaultEnvOnce sync.Once
)

// Load parses environment variables into v using `env` struct tags.
// The default .env file is read once, if present. Each configuration type is
// parsed once; later calls for the same type return the cached copy.
//
// Example:
//
//	type ClientConfig struct {
//		BaseURL string        `env:"RPC_BASE_URL,required"`
//		Timeout time.Duration `env:"RPC_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvOnce.Do(func() {
		// A missing .env file is not an error.
		_ = godotenv.Load()
	})

	key := typeOf[T]()

	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	if cached, ok := loaded.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	return parseLocked(key, v)
}

// MustLoad is Load that panics on failure. Use it for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reload parses v again, replacing the cached copy of its type.
// Handy in tests after the process environment changed.
func Reload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	key := typeOf[T]()

	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	delete(loaded.values, key)
	return parseLocked(key, v)
}

// ResetCache drops every cached configuration.
func ResetCache() {
	loaded.mu.Lock()
	defer loaded.mu.Unlock()
	loaded.values = make(map[reflect.Type]any)
}

// LoadEnv reads the given .env files into the process environment. Later
// files override earlier ones; with no paths the default .env is read.
// Cached configurations are not refreshed, call Reload for that.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

func parseLocked[T any](key reflect.Type, v *T) error {
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	loaded.values[key] = *v
	return nil
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
