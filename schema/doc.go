// Package schema provides the field-permission registry and the core data
// model (documents, principals, modifiers, per-field rules) used by fieldgate
// authorization checks.
//
// # Rules
//
// A [Rule] bundles up to four predicates for one field name. Which pair is
// consulted (CreateIf/EditIf or InsertableIf/EditableIf) is decided by the
// gateway's configured variant, never by this package. A field with no rule,
// or a rule with no predicate for the requested operation, is denied.
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O. Rules are
// registered during initialization and frozen before the registry is used
// for checks; bit-for-bit the same lookups are then safe from any goroutine.
//
// # What this package must NOT do
//
//   - Access stores, the network, or the clock.
//   - Import fieldgate, docstore, or token (no upward imports).
//   - Mutate rules after [Registry.Freeze].
package schema
