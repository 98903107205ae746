// Package token provides JWT-based principal resolution for fieldgate
// gateways. A [Manager] issues and parses signed principal tokens; a
// [Resolver] adapts parsing into the gateway's principal-resolution
// contract by reading a bearer token bound into the call context with
// [Bind].
//
// # Signing methods
//
// Supported: Ed25519 (default) and HS256. Keys are validated at Manager
// construction; parsing rejects any token whose algorithm differs from the
// configured one.
//
// # Architecture boundaries
//
// This package translates tokens into principals and nothing more. It does
// NOT evaluate field permissions or touch the document store.
//
// # What this package must NOT do
//
//   - Import fieldgate or docstore (no upward imports).
//   - Accept unsigned or cross-algorithm tokens.
//   - Cache parsed principals between calls.
package token
