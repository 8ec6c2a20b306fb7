// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing. Each configuration type is
// parsed once and cached for the lifetime of the process, so packages can
// call Load from their constructors without re-reading the environment.
//
// # Usage
//
//	var cfg rpc.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("load rpc config: %v", err)
//	}
//	client, err := rpc.NewFromConfig(cfg, registry)
//
// LoadEnv reads additional .env files; Reload and ResetCache refresh the
// cache after the environment changed, mostly in tests.
//
// # Errors
//
//   - ErrParsingConfig: a variable is missing or malformed.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrNilPointer: nil target.
package config
