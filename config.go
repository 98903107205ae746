package fieldgate

import "errors"

// Variant selects which predicate pair of a [Rule] the gateway consults.
type Variant uint8

const (
	// VariantStrict consults Rule.CreateIf and Rule.EditIf.
	VariantStrict Variant = iota
	// VariantRefined consults Rule.InsertableIf and Rule.EditableIf.
	VariantRefined
)

// DeletePolicy selects how the delete predicate's [Decision] is applied.
// Pick one policy per configured gateway; the two are never mixed within
// one operation.
type DeletePolicy uint8

const (
	// DeleteDenyUnlessAllowed proceeds only when the predicate returns
	// [Allow]. This is the strict default.
	DeleteDenyUnlessAllowed DeletePolicy = iota
	// DeleteAllowUnlessDenied proceeds unless the predicate returns
	// [Deny]; [Skip] counts as allowed. Used with permissive-by-default
	// delete callbacks.
	DeleteAllowUnlessDenied
)

/*
====================================
METHODS CONFIG
====================================
*/

// MethodsConfig names the remote operations registered by
// [Gateway.RegisterMethods]. An empty name disables registration of that
// operation; each is independently enable-able.
type MethodsConfig struct {
	Create string
	Edit   string
	Delete string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking when the buffer is
	// full. Dropped events are counted and reported by
	// [Gateway.AuditDropped].
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process metrics counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// Config is the gateway configuration. Configure once, then treat as
// immutable; [Builder.Build] copies it.
type Config struct {
	// Collection names the document collection this gateway guards. Used
	// in audit events and method name defaults.
	Collection string

	Variant      Variant
	DeletePolicy DeletePolicy

	Methods MethodsConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// DefaultConfig returns a strict-variant configuration with no methods
// registered, audit disabled, and metrics enabled.
func DefaultConfig(collection string) Config {
	return Config{
		Collection:   collection,
		Variant:      VariantStrict,
		DeletePolicy: DeleteDenyUnlessAllowed,
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// DefaultMethods returns the conventional method names for a collection:
// "<collection>.create", "<collection>.edit", "<collection>.delete".
func DefaultMethods(collection string) MethodsConfig {
	return MethodsConfig{
		Create: collection + ".create",
		Edit:   collection + ".edit",
		Delete: collection + ".delete",
	}
}

// Validate checks invariants that do not depend on injected collaborators.
// Collaborator-dependent checks (delete method fail-closed, store and
// schema presence) happen in [Builder.Build].
func (c Config) Validate() error {
	if c.Collection == "" {
		return errors.New("collection name required")
	}
	if c.Variant != VariantStrict && c.Variant != VariantRefined {
		return errors.New("invalid variant")
	}
	if c.DeletePolicy != DeleteDenyUnlessAllowed && c.DeletePolicy != DeleteAllowUnlessDenied {
		return errors.New("invalid delete policy")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("audit buffer size must be positive")
	}
	return nil
}
