package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rpckit/pkg/logger"
)

func TestWithEnvironment(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		wantEnv   string
		wantDebug bool
		wantJSON  bool
	}{
		{name: "development", env: logger.EnvDevelopment, wantEnv: logger.EnvDevelopment, wantDebug: true},
		{name: "staging alias", env: "stage", wantEnv: logger.EnvStaging, wantJSON: true},
		{name: "production upper case", env: "PRODUCTION", wantEnv: logger.EnvProduction, wantJSON: true},
		{name: "unknown falls back to development", env: "qa", wantEnv: logger.EnvDevelopment, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(logger.WithEnvironment(tt.env, "svc"), logger.WithOutput(buf))

			log.Debug("debug")
			assert.Equal(t, tt.wantDebug, buf.Len() > 0)

			buf.Reset()
			log.Info("info")
			if !tt.wantJSON {
				assert.Contains(t, buf.String(), "service=svc")
				assert.Contains(t, buf.String(), "env="+tt.wantEnv)
				return
			}
			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "svc", entry["service"])
			assert.Equal(t, tt.wantEnv, entry["env"])
		})
	}
}

func TestWithEnvironment_EmptyServiceIsNoop(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithDevelopment(""), logger.WithOutput(buf))

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Info("shown")
	assert.NotContains(t, buf.String(), "service")
}

func TestFromConfig(t *testing.T) {
	t.Run("production defaults", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.FromConfig(logger.Config{Env: logger.EnvProduction, Service: "catalog"}),
			logger.WithOutput(buf),
		)
		log.Debug("hidden")
		log.Info("shown")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "catalog", entry["service"])
		assert.Equal(t, logger.EnvProduction, entry["env"])
	})

	t.Run("explicit level wins", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.FromConfig(logger.Config{Env: logger.EnvProduction, Service: "catalog", Level: "debug"}),
			logger.WithOutput(buf),
		)
		log.Debug("visible")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("unknown level ignored", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.FromConfig(logger.Config{Env: "prod", Service: "catalog", Level: "loud"}),
			logger.WithOutput(buf),
		)
		log.Debug("hidden")
		assert.Empty(t, buf.String())
	})
}
