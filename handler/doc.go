// Package handler renders the responses produced by route entry points.
//
// Every response is JSON. Success payloads are written as-is with the status
// chosen by the route. Failures use one of two shapes:
//
//	{"error": "Unauthorized"}                                  // 401, 500, HTTPError
//	{"error": "Invalid request data received for 'body'",
//	 "details": {"name": ["field is required"]}}               // strict validation, 400
//
// HTTPError values let business logic pick a non-2xx status explicitly:
//
//	func getProduct(ctx context.Context, req route.Request[...]) (Product, error) {
//		p, ok := store.Find(req.Params.ID)
//		if !ok {
//			return Product{}, handler.ErrNotFound
//		}
//		return p, nil
//	}
//
// Messages written by this package never include submitted values or the
// text of unexpected errors.
package handler
