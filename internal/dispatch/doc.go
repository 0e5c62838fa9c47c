// Package dispatch implements the request validation and response
// serialization layer that wraps every route handler.
//
// Wrap turns a business handler into an http.HandlerFunc: it parses the
// declared query/body/form schemas, rejects invalid input with an aggregated
// 400 before the handler runs, opens a request-scoped database session,
// converts business and persistence errors into the JSON error envelope, and
// serializes successful results. Handlers receive already-typed inputs
// through a Context and return a tagged Response, so they never touch HTTP
// framing directly.
package dispatch
