package schema

// Document is a persisted mapping from field name to value, addressed by a
// unique id. The gateway never owns documents; it only mediates access to
// them.
type Document map[string]any

// Clone returns a shallow copy of the document. A nil document clones to nil.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Principal identifies the acting caller. A zero Principal is anonymous and
// is rejected before any field check.
type Principal struct {
	ID    string
	Attrs Document
}

// Anonymous reports whether no identity was resolved for the caller.
func (p Principal) Anonymous() bool {
	return p.ID == ""
}

// Modifier is a patch-style edit request: fields to set and fields to
// remove. At least one of the two must be non-empty for an edit to be
// accepted at the boundary.
type Modifier struct {
	Set   Document
	Unset []string
}

// Empty reports whether the modifier carries no operations.
func (m Modifier) Empty() bool {
	return len(m.Set) == 0 && len(m.Unset) == 0
}

// Fields returns every field name referenced by the modifier, set fields
// first, then unset fields. A field appearing in both is returned twice;
// the gateway checks each occurrence identically, so duplicates are
// harmless.
func (m Modifier) Fields() []string {
	fields := make([]string, 0, len(m.Set)+len(m.Unset))
	for name := range m.Set {
		fields = append(fields, name)
	}
	fields = append(fields, m.Unset...)
	return fields
}

// CreatePredicate decides whether the principal may set a field on a new
// document.
type CreatePredicate func(p Principal) bool

// EditPredicate decides whether the principal may set or remove a field on
// an existing document. doc is the pre-mutation document state, or nil when
// the target document does not exist; predicates decide for themselves
// whether a missing document is actionable.
type EditPredicate func(p Principal, doc Document) bool

// Rule is the per-field permission entry. The strict variant consults
// CreateIf/EditIf; the refined variant consults InsertableIf/EditableIf.
// A nil predicate denies the corresponding operation.
type Rule struct {
	CreateIf     CreatePredicate
	EditIf       EditPredicate
	InsertableIf CreatePredicate
	EditableIf   EditPredicate
}
