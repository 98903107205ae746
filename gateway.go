package fieldgate

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldgate/fieldgate/schema"
)

// Gateway is the field-level authorization layer in front of document
// create/edit/delete operations on one collection. It evaluates per-field
// permission predicates against incoming mutation requests and either
// forwards exactly one mutating call to the store or rejects the whole
// request; it never applies a partial write.
//
// Gateway instances are configured through [Builder] and are immutable and
// safe for concurrent use after [Builder.Build].
type Gateway struct {
	config          Config
	schema          *schema.Registry
	store           Store
	resolver        PrincipalResolver
	createTransform CreateTransform
	editTransform   EditTransform
	deleteIf        DeletePredicate
	audit           *auditDispatcher
	metrics         *Metrics
}

// Close shuts down the audit dispatcher, draining buffered events.
func (g *Gateway) Close() {
	if g == nil {
		return
	}
	if g.audit != nil {
		g.audit.Close()
	}
}

// AuditDropped returns the number of audit events dropped because the
// dispatch buffer was full.
func (g *Gateway) AuditDropped() uint64 {
	if g == nil || g.audit == nil {
		return 0
	}
	return g.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the gateway's metrics.
func (g *Gateway) MetricsSnapshot() MetricsSnapshot {
	if g == nil || g.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return g.metrics.Snapshot()
}

func (g *Gateway) metricInc(id MetricID) {
	if g == nil || g.metrics == nil {
		return
	}
	g.metrics.Inc(id)
}

// Create checks every field of the candidate document against its create
// predicate and, when all pass, inserts the (optionally transformed)
// document into the store. It returns the new document id.
//
// An anonymous principal fails with [ErrNotLoggedIn]. A field with no
// registered rule, or whose predicate is absent or returns false, fails
// the whole request with a [*FieldError]; nothing is inserted.
func (g *Gateway) Create(ctx context.Context, p Principal, doc Document) (string, error) {
	if g == nil || g.store == nil || g.schema == nil {
		return "", ErrGatewayNotReady
	}
	if g.metrics.LatencyEnabled() {
		start := time.Now()
		defer g.metrics.Observe(MetricCheckLatency, time.Since(start))
	}

	if p.Anonymous() {
		g.metricInc(MetricNotLoggedIn)
		g.emitAudit(ctx, auditEventCreateDenied, false, "", "", "", ErrNotLoggedIn, nil)
		return "", ErrNotLoggedIn
	}

	for name := range doc {
		if !g.createAllowed(name, p) {
			err := fieldNotAllowed("create", name)
			g.metricInc(MetricCreateDenied)
			g.emitAudit(ctx, auditEventCreateDenied, false, p.ID, "", name, err, nil)
			return "", err
		}
	}

	if g.createTransform != nil {
		doc = g.createTransform(p, doc)
	}

	id, err := g.store.Insert(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert failed: %w", err)
	}

	g.metricInc(MetricCreateSuccess)
	g.emitAudit(ctx, auditEventCreateSuccess, true, p.ID, id, "", nil, nil)

	return id, nil
}

// Edit checks every field referenced by the modifier against its edit
// predicate, evaluated with the pre-mutation document state, and when all
// pass applies the (optionally transformed) modifier via the store.
//
// The target document is read before the check; if it does not exist the
// predicates receive a nil document rather than the request failing early.
// Callers' predicates decide whether a missing document is actionable. The
// read-then-write sequence is not isolated against concurrent mutations of
// the same document.
func (g *Gateway) Edit(ctx context.Context, p Principal, documentID string, mod Modifier) error {
	if g == nil || g.store == nil || g.schema == nil {
		return ErrGatewayNotReady
	}
	if g.metrics.LatencyEnabled() {
		start := time.Now()
		defer g.metrics.Observe(MetricCheckLatency, time.Since(start))
	}

	if p.Anonymous() {
		g.metricInc(MetricNotLoggedIn)
		g.emitAudit(ctx, auditEventEditDenied, false, "", documentID, "", ErrNotLoggedIn, nil)
		return ErrNotLoggedIn
	}
	if mod.Empty() {
		g.metricInc(MetricInvalidArgument)
		return fmt.Errorf("%w: empty modifier", ErrInvalidArgument)
	}

	doc, err := g.store.FindOne(ctx, documentID)
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}

	for _, name := range mod.Fields() {
		if !g.editAllowed(name, p, doc) {
			err := fieldNotAllowed("edit", name)
			g.metricInc(MetricEditDenied)
			g.emitAudit(ctx, auditEventEditDenied, false, p.ID, documentID, name, err, nil)
			return err
		}
	}

	if g.editTransform != nil {
		mod = g.editTransform(p, mod, doc)
	}

	if err := g.store.Update(ctx, documentID, mod.Set, mod.Unset); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	g.metricInc(MetricEditSuccess)
	g.emitAudit(ctx, auditEventEditSuccess, true, p.ID, documentID, "", nil, nil)

	return nil
}

// Delete evaluates the document-level delete predicate with the
// pre-mutation document state (nil when absent) and, when the configured
// [DeletePolicy] permits the resulting [Decision], removes the document.
//
// A nil delete predicate denies under either policy. The read-then-write
// sequence is not isolated against concurrent mutations.
func (g *Gateway) Delete(ctx context.Context, p Principal, documentID string) error {
	if g == nil || g.store == nil {
		return ErrGatewayNotReady
	}
	if g.metrics.LatencyEnabled() {
		start := time.Now()
		defer g.metrics.Observe(MetricCheckLatency, time.Since(start))
	}

	if p.Anonymous() {
		g.metricInc(MetricNotLoggedIn)
		g.emitAudit(ctx, auditEventDeleteDenied, false, "", documentID, "", ErrNotLoggedIn, nil)
		return ErrNotLoggedIn
	}

	doc, err := g.store.FindOne(ctx, documentID)
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}

	if !g.deleteAllowed(p, doc) {
		g.metricInc(MetricDeleteDenied)
		g.emitAudit(ctx, auditEventDeleteDenied, false, p.ID, documentID, "", ErrDeleteDenied, nil)
		return ErrDeleteDenied
	}

	if err := g.store.Remove(ctx, documentID); err != nil {
		return fmt.Errorf("remove failed: %w", err)
	}

	g.metricInc(MetricDeleteSuccess)
	g.emitAudit(ctx, auditEventDeleteSuccess, true, p.ID, documentID, "", nil, nil)

	return nil
}

// InsertableFields returns every schema field whose create predicate
// evaluates true for p, in registration order. Pure read; no side effects.
func (g *Gateway) InsertableFields(p Principal) []string {
	if g == nil || g.schema == nil {
		return nil
	}
	g.metricInc(MetricFieldsQuery)

	var fields []string
	for _, name := range g.schema.Fields() {
		if g.createAllowed(name, p) {
			fields = append(fields, name)
		}
	}
	return fields
}

// EditableFields returns every schema field whose edit predicate evaluates
// true for (p, doc), in registration order. Pure read; no side effects.
func (g *Gateway) EditableFields(p Principal, doc Document) []string {
	if g == nil || g.schema == nil {
		return nil
	}
	g.metricInc(MetricFieldsQuery)

	var fields []string
	for _, name := range g.schema.Fields() {
		if g.editAllowed(name, p, doc) {
			fields = append(fields, name)
		}
	}
	return fields
}

func (g *Gateway) createAllowed(field string, p Principal) bool {
	rule, ok := g.schema.Rule(field)
	if !ok {
		return false
	}

	var pred schema.CreatePredicate
	switch g.config.Variant {
	case VariantRefined:
		pred = rule.InsertableIf
	default:
		pred = rule.CreateIf
	}

	return pred != nil && pred(p)
}

func (g *Gateway) editAllowed(field string, p Principal, doc Document) bool {
	rule, ok := g.schema.Rule(field)
	if !ok {
		return false
	}

	var pred schema.EditPredicate
	switch g.config.Variant {
	case VariantRefined:
		pred = rule.EditableIf
	default:
		pred = rule.EditIf
	}

	return pred != nil && pred(p, doc)
}

func (g *Gateway) deleteAllowed(p Principal, doc Document) bool {
	if g.deleteIf == nil {
		return false
	}

	decision := g.deleteIf(p, doc)
	if g.config.DeletePolicy == DeleteAllowUnlessDenied {
		return decision != Deny
	}
	return decision == Allow
}
