// Package route defines typed HTTP routes and the registry built from them.
//
// A Route couples a Descriptor (path, method, strict and authentication
// flags) with optional validators for the body, query string and path
// parameters, an optional session deriver and a handler. Its entry point
// (ServeHTTP) runs, in order:
//
//  1. the session gate: a route that requires authentication answers 401
//     {"error":"Unauthorized"} when the deriver finds no session;
//  2. the validation gate: body, then query, then params. A strict route
//     answers 400 naming the first failing source; a lenient route passes
//     the failing field to the handler as nil;
//  3. the handler, whose result is rendered as JSON. A returned
//     handler.HTTPError picks its own status;
//  4. anything else (handler errors, deriver errors, panics) becomes an
//     opaque 500. Causes are logged only for Verbose routes.
//
// Routing is left to the surrounding router: mount Route values on chi or
// http.ServeMux, or walk a Registry with Each.
//
// A Registry indexes routes by (path, method). The typed Endpoint of a
// route (Route.Endpoint) is what the rpc package calls; the registry's Has
// check backs it at runtime.
//
//	var getProduct = route.New(route.Config[route.None, route.None, ProductParams, route.None, Product]{
//		Method: route.MethodGet,
//		Path:   "/api/products/{id}",
//		Strict: true,
//		Validators: route.Validators[route.None, route.None, ProductParams]{
//			Params: validate.Struct[ProductParams](nil),
//		},
//		PathParam: chi.URLParam,
//		Handler:   products.Get,
//	})
//
//	registry := route.NewRegistry(getProduct, createProduct)
//	registry.Each(func(d route.Descriptor, h http.Handler) {
//		r.Method(d.Method.String(), d.Path, h)
//	})
package route
