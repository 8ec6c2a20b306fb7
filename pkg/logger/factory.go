package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format is the output encoding of a logger.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Environment names accepted by WithEnvironment and Config.Env.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

type preset struct {
	level  slog.Level
	format Format
}

var presets = map[string]preset{
	EnvDevelopment: {level: slog.LevelDebug, format: FormatText},
	EnvStaging:     {level: slog.LevelInfo, format: FormatJSON},
	EnvProduction:  {level: slog.LevelInfo, format: FormatJSON},
}

var envAliases = map[string]string{
	"dev":   EnvDevelopment,
	"stage": EnvStaging,
	"prod":  EnvProduction,
}

// Config is the environment-driven logger configuration.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"SERVICE_NAME" envDefault:"rpckit"`
	// Level overrides the environment default: debug, info, warn or error.
	Level string `env:"LOG_LEVEL"`
}

// FromConfig applies the preset of cfg.Env and then the explicit level, if
// any. An unknown level is ignored.
func FromConfig(cfg Config) Option {
	return func(c *config) {
		WithEnvironment(cfg.Env, cfg.Service)(c)
		if cfg.Level == "" {
			return
		}
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(strings.TrimSpace(cfg.Level))); err == nil {
			c.level = lvl
		}
	}
}

// Option configures New.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets the output format. It panics on an unknown format.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

func WithTextFormatter() Option { return WithFormat(FormatText) }

func WithJSONFormatter() Option { return WithFormat(FormatJSON) }

// WithOutput sets the destination. nil is ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithContextExtractors registers extractors run on every record. nil
// extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithEnvironment applies the level and format preset of env and tags every
// record with service and env. Unknown environments use the development
// preset; an empty service leaves the logger untouched.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		if service == "" {
			return
		}
		name := strings.ToLower(strings.TrimSpace(env))
		if alias, ok := envAliases[name]; ok {
			name = alias
		}
		p, ok := presets[name]
		if !ok {
			name, p = EnvDevelopment, presets[EnvDevelopment]
		}
		c.level, c.format = p.level, p.format
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", name))
	}
}

func WithDevelopment(service string) Option { return WithEnvironment(EnvDevelopment, service) }

func WithStaging(service string) Option { return WithEnvironment(EnvStaging, service) }

func WithProduction(service string) Option { return WithEnvironment(EnvProduction, service) }

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// New builds a logger. Without options it writes JSON at info level to
// stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var h slog.Handler
	if cfg.format == FormatText {
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}

	return slog.New(newContextHandler(h, cfg.extractors))
}
