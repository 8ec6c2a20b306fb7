package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rpckit/pkg/config"
)

type defaultsConfig struct {
	BaseURL string        `env:"CFG_TEST_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"CFG_TEST_TIMEOUT" envDefault:"5s"`
	Verbose bool          `env:"CFG_TEST_VERBOSE" envDefault:"true"`
}

type overriddenConfig struct {
	BaseURL string `env:"CFG_TEST_OVERRIDDEN_URL" envDefault:"http://localhost"`
	Retries int    `env:"CFG_TEST_OVERRIDDEN_RETRIES"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"first"`
}

type requiredConfig struct {
	Secret string `env:"CFG_TEST_REQUIRED_SECRET,required"`
}

type fileConfig struct {
	Name  string   `env:"CFG_TEST_FILE_NAME"`
	Items []string `env:"CFG_TEST_FILE_ITEMS" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CFG_TEST_OVERRIDDEN_URL", "https://api.example.com")
	t.Setenv("CFG_TEST_OVERRIDDEN_RETRIES", "3")

	var cfg overriddenConfig
	require.NoError(t, config.Reload(&cfg))

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, 3, cfg.Retries)
}

func TestLoad_Cached(t *testing.T) {
	var first cachedConfig
	require.NoError(t, config.Reload(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("CFG_TEST_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value, "cached copy must be returned")

	var reloaded cachedConfig
	require.NoError(t, config.Reload(&reloaded))
	assert.Equal(t, "second", reloaded.Value)
}

func TestLoad_Required(t *testing.T) {
	var cfg requiredConfig
	err := config.Reload(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() {
		var again requiredConfig
		config.MustLoad(&again)
	})
}

func TestLoad_NilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[defaultsConfig](nil), config.ErrNilPointer)
	assert.ErrorIs(t, config.Reload[defaultsConfig](nil), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, ".env.base")
	override := filepath.Join(dir, ".env.override")
	require.NoError(t, os.WriteFile(base, []byte("CFG_TEST_FILE_NAME=base\nCFG_TEST_FILE_ITEMS=a,b,c\n"), 0o600))
	require.NoError(t, os.WriteFile(override, []byte("CFG_TEST_FILE_NAME=override\n"), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("CFG_TEST_FILE_NAME")
		os.Unsetenv("CFG_TEST_FILE_ITEMS")
	})

	require.NoError(t, config.LoadEnv(base, override))

	var cfg fileConfig
	require.NoError(t, config.Reload(&cfg))
	assert.Equal(t, "override", cfg.Name)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Items)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.Panics(t, func() {
		config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	})
}
