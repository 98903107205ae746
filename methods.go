package fieldgate

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// MethodFunc is the handler signature expected by the remote-procedure
// mechanism: positional arguments in, one result value (or nil) out.
type MethodFunc func(ctx context.Context, args ...any) (any, error)

// MethodRegistrar is the remote-procedure mechanism's registration
// surface. [Mux] is an in-process implementation; hosts with their own
// dispatch layer implement this interface instead.
type MethodRegistrar interface {
	RegisterMethod(name string, fn MethodFunc) error
}

// RegisterMethods registers the gateway's configured operations with reg.
// Each handler validates the raw call argument shapes, resolves the acting
// principal from the call context, and forwards to the corresponding
// gateway operation, propagating its result or failure verbatim.
//
// Operations with an empty configured name are not registered. The delete
// operation additionally requires a delete predicate; Build already fails
// closed on that combination, so a missing predicate here means the
// Gateway was not built through [Builder].
func (g *Gateway) RegisterMethods(reg MethodRegistrar) error {
	if g == nil || g.resolver == nil {
		return ErrGatewayNotReady
	}
	if reg == nil {
		return errors.New("method registrar required")
	}

	if name := g.config.Methods.Create; name != "" {
		if err := reg.RegisterMethod(name, g.createMethod); err != nil {
			return err
		}
	}

	if name := g.config.Methods.Edit; name != "" {
		if err := reg.RegisterMethod(name, g.editMethod); err != nil {
			return err
		}
	}

	if name := g.config.Methods.Delete; name != "" {
		if g.deleteIf == nil {
			return errors.New("delete method requires a delete predicate")
		}
		if err := reg.RegisterMethod(name, g.deleteMethod); err != nil {
			return err
		}
	}

	return nil
}

func (g *Gateway) createMethod(ctx context.Context, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: create expects (document)", ErrInvalidArgument)
	}

	doc, err := documentArg(args[0])
	if err != nil {
		g.metricInc(MetricInvalidArgument)
		return nil, err
	}

	p, _ := g.resolver.Resolve(ctx)
	return g.Create(ctx, p, doc)
}

func (g *Gateway) editMethod(ctx context.Context, args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: edit expects (documentId, modifier)", ErrInvalidArgument)
	}

	id, err := documentIDArg(args[0])
	if err != nil {
		g.metricInc(MetricInvalidArgument)
		return nil, err
	}

	mod, ok := args[1].(Modifier)
	if !ok {
		mod, err = ParseModifier(args[1])
		if err != nil {
			g.metricInc(MetricInvalidArgument)
			return nil, err
		}
	}

	p, _ := g.resolver.Resolve(ctx)
	return nil, g.Edit(ctx, p, id, mod)
}

func (g *Gateway) deleteMethod(ctx context.Context, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: delete expects (documentId)", ErrInvalidArgument)
	}

	id, err := documentIDArg(args[0])
	if err != nil {
		g.metricInc(MetricInvalidArgument)
		return nil, err
	}

	p, _ := g.resolver.Resolve(ctx)
	return nil, g.Delete(ctx, p, id)
}

func documentArg(arg any) (Document, error) {
	switch v := arg.(type) {
	case Document:
		return v, nil
	case map[string]any:
		return Document(v), nil
	default:
		return nil, fmt.Errorf("%w: document must be a mapping", ErrInvalidArgument)
	}
}

func documentIDArg(arg any) (string, error) {
	id, ok := arg.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: documentId must be a non-empty string", ErrInvalidArgument)
	}
	return id, nil
}

// Mux is a minimal in-process method dispatcher implementing
// [MethodRegistrar]. It exists so tests, examples, and the HTTP middleware
// have a concrete dispatch mechanism; production hosts typically adapt
// their own RPC layer instead.
type Mux struct {
	mu      sync.RWMutex
	methods map[string]MethodFunc
}

// NewMux creates an empty method dispatcher.
func NewMux() *Mux {
	return &Mux{
		methods: make(map[string]MethodFunc),
	}
}

// RegisterMethod implements [MethodRegistrar]. Duplicate names are
// rejected.
func (m *Mux) RegisterMethod(name string, fn MethodFunc) error {
	if name == "" {
		return errors.New("method name cannot be empty")
	}
	if fn == nil {
		return errors.New("method handler cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.methods[name]; exists {
		return fmt.Errorf("method %q already registered", name)
	}
	m.methods[name] = fn

	return nil
}

// Call invokes the named method with the given arguments. An unregistered
// name fails with [ErrMethodNotFound].
func (m *Mux) Call(ctx context.Context, name string, args ...any) (any, error) {
	m.mu.RLock()
	fn, ok := m.methods[name]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, name)
	}

	return fn(ctx, args...)
}

// Has reports whether the named method is registered.
func (m *Mux) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.methods[name]
	return ok
}
