package route

// Endpoint is the typed client handle of a route. It fixes at compile time
// the body (B), query (Q), path parameter (P) and response (R) types of a
// remote call. It can only be obtained from Route.Endpoint, so a caller can
// only reference endpoints that were defined; whether the route was also
// registered is checked at call time against the Registry.
type Endpoint[B, Q, P, R any] struct {
	path   string
	method Method
}

// Path returns the route path, placeholders included.
func (e Endpoint[B, Q, P, R]) Path() string { return e.path }

// Method returns the route method.
func (e Endpoint[B, Q, P, R]) Method() Method { return e.method }

// Key returns the registry key of the endpoint.
func (e Endpoint[B, Q, P, R]) Key() Key {
	return Key{Path: e.path, Method: e.method}
}

func (e Endpoint[B, Q, P, R]) String() string { return e.Key().String() }

// EndpointFor builds an endpoint handle from a bare method and path, for
// callers that know a route only by its address. Nothing checks it at
// compile time; the rpc client still rejects it unless the route is
// registered.
func EndpointFor[B, Q, P, R any](method Method, path string) Endpoint[B, Q, P, R] {
	return Endpoint[B, Q, P, R]{path: path, method: method}
}
