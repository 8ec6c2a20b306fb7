package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
)

// MeterName is the instrumentation scope of every instrument in this package.
const MeterName = "github.com/dmitrymomot/rpckit"

// Config is the environment-driven metrics configuration.
type Config struct {
	Enabled        bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Path           string `env:"METRICS_PATH" envDefault:"/metrics"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"rpckit"`
	ServiceVersion string `env:"SERVICE_VERSION" envDefault:"dev"`
}

// Provider is an OpenTelemetry meter provider exported in the Prometheus
// text format through its own registry.
type Provider struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
}

// NewPrometheus builds a Provider for cfg.
func NewPrometheus(cfg Config) (*Provider, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, errors.Join(ErrExporter, err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	)

	return &Provider{
		registry: registry,
		provider: sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		),
	}, nil
}

// Meter returns the package meter.
func (p *Provider) Meter() metric.Meter {
	return p.provider.Meter(MeterName)
}

// Handler serves the collected metrics for scraping.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.provider.Shutdown(ctx)
}
