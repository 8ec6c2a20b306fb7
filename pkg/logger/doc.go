// Package logger builds *slog.Logger instances and holds the attribute
// helpers shared by the route pipeline and the rpc client.
//
// New takes functional options: output format, level, static attributes,
// per-environment presets (WithEnvironment and its WithDevelopment, WithStaging, WithProduction shortcuts,
// or FromConfig for env-driven setup) and ContextExtractor callbacks that
// inject request-scoped values such as the request id on every record.
//
//	log := logger.New(
//		logger.FromConfig(cfg),
//		logger.WithContextExtractors(requestid.LoggerExtractor),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "remote call failed",
//		logger.Route("GET /api/products/{id}"),
//		logger.Status(502),
//		logger.Error(err),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
