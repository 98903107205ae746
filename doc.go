// Package fieldgate provides a field-level authorization gateway for
// document create/edit/delete operations on a data collection. For every
// mutation it determines, per field, whether the acting principal is
// permitted to set, change, or remove that field, and rejects the whole
// operation if any field fails the check. Absence of a matching predicate
// is always denial, never implicit allow.
//
// The package is designed for concurrent server workloads: Gateway methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// fieldgate is the public surface. It exposes [Gateway], [Builder],
// [Config], the sentinel error taxonomy, and value types. The data model
// and field-permission registry live in the schema subpackage; store and
// principal-resolution backends live in docstore and token and are
// injected through the [Store] and [PrincipalResolver] contracts.
//
// # What this package must NOT do
//
//   - Own documents or persist state: it forwards at most one store call
//     per operation and never applies a partial write.
//   - Lock around the store: the read-then-check-then-write sequence for
//     edit and delete is not isolated against concurrent mutations of the
//     same document.
//   - Validate field types or shapes — that belongs to the host's schema
//     system.
package fieldgate
