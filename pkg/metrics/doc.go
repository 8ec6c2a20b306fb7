// Package metrics records route and remote call outcomes with
// OpenTelemetry instruments and exposes them to Prometheus.
//
//	provider, err := metrics.NewPrometheus(cfg)
//	recorder, err := metrics.NewRecorder(provider.Meter())
//
//	route.Config{..., Observer: recorder}
//	rpc.New(baseURL, registry, rpc.WithObserver(recorder))
//	r.Handle(cfg.Path, provider.Handler())
//
// Instruments: rpckit.route.requests and rpckit.route.duration (labels
// route, method, status), rpckit.client.calls and rpckit.client.duration
// (labels route, method, status, outcome).
package metrics
