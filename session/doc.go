// Package session builds session derivers for routes.
//
// A deriver turns a request into an optional session: Bearer resolves an
// opaque token through a Lookup (a MemoryStore or RedisStore Get method, or
// any function), JWT verifies an HS256 token into a claims type. In both
// cases a missing or unknown token is "no session", which a route that
// requires authentication answers with 401; only unexpected lookup failures
// surface as errors.
//
//	store := session.NewRedisStore[User](redisClient, "session:")
//
//	route.New(route.Config[None, None, None, User, Profile]{
//		Method:                 route.MethodGet,
//		Path:                   "/api/me",
//		RequiresAuthentication: true,
//		Session:                session.Bearer(store.Get),
//		Handler:                profile,
//	})
package session
