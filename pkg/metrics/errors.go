package metrics

import "errors"

// ErrExporter wraps failures creating the Prometheus exporter.
var ErrExporter = errors.New("metrics: failed to create exporter")
