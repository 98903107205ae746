// Package middleware exposes a fieldgate method mux over HTTP.
//
// [Methods] serves POST requests of the form
//
//	{"method": "posts.create", "params": [{"title": "x"}]}
//
// dispatching through [fieldgate.Mux] and mapping the gateway's error
// taxonomy to HTTP status codes (401 not logged in, 403 disallowed field /
// delete denied, 400 invalid argument, 404 unknown method). A bearer token
// in the Authorization header is bound into the request context through
// the caller-supplied binder so the gateway's principal resolver can see
// it.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into mux calls. It does NOT make
// authorization decisions — all decisions are delegated to the gateway
// behind the mux.
//
// # What this package must NOT do
//
//   - Parse tokens itself (the binder and resolver own that).
//   - Touch the document store.
//   - Soften gateway denials into successes.
package middleware
