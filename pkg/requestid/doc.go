// Package requestid assigns every incoming request an id and carries it
// through logs and outgoing remote calls.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor))
//
//	client, err := rpc.New(baseURL, registry, rpc.WithRequestHook(requestid.Propagate))
//
// Incoming ids are accepted only when they are at most 128 characters of
// letters, digits, '-' or '_'; anything else is replaced by a fresh UUID.
package requestid
