package fieldgate

import (
	"errors"

	"github.com/fieldgate/fieldgate/schema"
)

// Builder assembles a [Gateway]. Configure it once, call Build, and treat
// the result as immutable.
type Builder struct {
	config Config

	schema   *schema.Registry
	store    Store
	resolver PrincipalResolver

	createTransform CreateTransform
	editTransform   EditTransform
	deleteIf        DeletePredicate

	auditSink AuditSink

	built bool
}

// New creates a Builder for the named collection with [DefaultConfig].
func New(collection string) *Builder {
	return &Builder{
		config: DefaultConfig(collection),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithSchema sets the field-permission registry. Build freezes it if the
// caller has not already done so.
func (b *Builder) WithSchema(reg *schema.Registry) *Builder {
	b.schema = reg
	return b
}

// WithStore sets the document store the gateway guards.
func (b *Builder) WithStore(st Store) *Builder {
	b.store = st
	return b
}

// WithResolver sets the principal resolver used by registered methods.
// Defaults to [ContextResolver].
func (b *Builder) WithResolver(r PrincipalResolver) *Builder {
	b.resolver = r
	return b
}

// WithCreateTransform sets the optional create-transform callback.
func (b *Builder) WithCreateTransform(f CreateTransform) *Builder {
	b.createTransform = f
	return b
}

// WithEditTransform sets the optional edit-transform callback.
func (b *Builder) WithEditTransform(f EditTransform) *Builder {
	b.editTransform = f
	return b
}

// WithDeletePredicate sets the document-level delete predicate. Required
// when a delete method name is configured; without it [Gateway.Delete]
// denies every request.
func (b *Builder) WithDeletePredicate(p DeletePredicate) *Builder {
	b.deleteIf = p
	return b
}

// WithAuditSink sets the audit sink. Ignored unless Config.Audit.Enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles in-process metrics counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and assembles the gateway.
//
// It fails closed at configuration time: a configured delete method name
// without a delete predicate is a build error, not a call-time one.
func (b *Builder) Build() (*Gateway, error) {
	if b.built {
		return nil, ErrBuilderReused
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.store == nil {
		return nil, errors.New("store required")
	}
	if b.schema == nil {
		return nil, errors.New("schema registry required")
	}
	if b.schema.Count() == 0 {
		return nil, errors.New("schema registry has no fields")
	}
	if cfg.Methods.Delete != "" && b.deleteIf == nil {
		return nil, errors.New("delete method requires a delete predicate")
	}

	b.schema.Freeze()

	resolver := b.resolver
	if resolver == nil {
		resolver = ContextResolver{}
	}

	g := &Gateway{
		config:          cfg,
		schema:          b.schema,
		store:           b.store,
		resolver:        resolver,
		createTransform: b.createTransform,
		editTransform:   b.editTransform,
		deleteIf:        b.deleteIf,
		audit:           newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:         NewMetrics(cfg.Metrics),
	}

	b.built = true

	return g, nil
}
