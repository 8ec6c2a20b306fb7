// Package rpc calls routes of a route.Registry over HTTP with the types the
// routes were defined with.
//
// An endpoint handle (route.Route.Endpoint) fixes the body, query, path
// parameter and response types at compile time; the client additionally
// checks at call time that the endpoint's path and method are in its
// registry.
//
//	client, err := rpc.New("https://api.example.com", registry,
//		rpc.WithTimeout(5*time.Second),
//		rpc.WithRequestHook(requestid.Propagate),
//	)
//
//	created := rpc.Call(ctx, client, createProduct.Endpoint(), rpc.Args[CreateProduct, route.None, route.None]{
//		Body: CreateProduct{Name: "Lamp", Price: 1999},
//	})
//
// Call returns nil on any failure (logged at warn level and passed to
// WithOnError hooks) and panics only for unregistered endpoints. Do is the
// error-returning variant.
//
// Only the method decides whether a JSON body and Content-Type are sent
// (POST, PUT, PATCH). Query values are appended, so repeated keys survive.
// Non-2xx responses are failures carrying a *StatusError.
package rpc
