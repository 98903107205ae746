package fieldgate

import (
	"context"

	"github.com/fieldgate/fieldgate/schema"
)

// Document is a mapping from field name to value. Alias of
// [schema.Document].
type Document = schema.Document

// Principal identifies the acting caller. Alias of [schema.Principal];
// a zero Principal is anonymous.
type Principal = schema.Principal

// Modifier is a patch-style set/unset edit request. Alias of
// [schema.Modifier].
type Modifier = schema.Modifier

// Rule is the per-field permission entry. Alias of [schema.Rule].
type Rule = schema.Rule

// Store is the document store contract consumed by the gateway. The
// gateway issues exactly one mutating call per successful operation and
// relies on the store's per-call atomicity; it performs no locking or
// retries of its own.
//
// FindOne must return (nil, nil) when no document exists under id: the
// gateway deliberately passes an absent document through to edit and
// delete predicates instead of failing early.
type Store interface {
	FindOne(ctx context.Context, id string) (Document, error)
	Insert(ctx context.Context, doc Document) (string, error)
	Update(ctx context.Context, id string, set Document, unset []string) error
	Remove(ctx context.Context, id string) error
}

// PrincipalResolver resolves the acting principal from a call context.
// ok is false when no principal is present (anonymous caller).
type PrincipalResolver interface {
	Resolve(ctx context.Context) (Principal, bool)
}

// CreateTransform optionally rewrites a candidate document after all field
// checks pass and before the store insert. It must be pure from the
// gateway's perspective; any side effects are the caller's responsibility.
type CreateTransform func(p Principal, doc Document) Document

// EditTransform optionally rewrites a validated modifier before the store
// update. doc is the pre-mutation document state, or nil when the target
// does not exist.
type EditTransform func(p Principal, mod Modifier, doc Document) Modifier

// Decision is the tri-state result of a document-level delete predicate.
type Decision uint8

const (
	// Skip expresses no opinion. Under [DeleteDenyUnlessAllowed] it
	// denies; under [DeleteAllowUnlessDenied] it allows.
	Skip Decision = iota
	// Allow permits the delete.
	Allow
	// Deny rejects the delete under either policy.
	Deny
)

// DeletePredicate decides whether the principal may delete the document.
// doc is nil when the target does not exist.
type DeletePredicate func(p Principal, doc Document) Decision
