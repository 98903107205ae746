// Package docstore provides document store backends satisfying the
// fieldgate store contract: [Memory], a mutex-guarded in-process map, and
// [Redis], JSON documents in Redis keyed by generated UUIDs.
//
// # Store contract
//
// Both backends implement FindOne/Insert/Update/Remove. FindOne returns
// (nil, nil) for an absent document — the gateway deliberately forwards
// absent documents to permission predicates instead of failing early, so
// backends must not invent a not-found error on the read path.
//
// # Architecture boundaries
//
// This package owns persistence only. It does NOT evaluate permissions,
// resolve principals, or interpret modifiers beyond applying set/unset
// operations it is handed.
//
// # What this package must NOT do
//
//   - Import fieldgate, token, or middleware (no upward imports).
//   - Make authorization decisions.
//   - Mutate documents handed to or returned from callers (defensive
//     copies on both sides).
package docstore
