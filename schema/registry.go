package schema

import (
	"errors"
	"sync"
)

// Registry maps field names to permission rules. Rules are attached with
// [Registry.Register] during initialization; [Registry.Freeze] must be
// called before the registry is handed to a gateway.
type Registry struct {
	mu     sync.RWMutex
	rules  map[string]Rule
	order  []string
	frozen bool
}

// NewRegistry creates an empty field-permission registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
	}
}

// Register attaches a rule to the named field. Registration order is
// preserved and defines the order of [Registry.Fields]. Must be called
// before [Registry.Freeze].
func (r *Registry) Register(field string, rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.New("registry frozen")
	}

	if field == "" {
		return errors.New("field name cannot be empty")
	}

	if _, exists := r.rules[field]; exists {
		return errors.New("field already registered")
	}

	r.rules[field] = rule
	r.order = append(r.order, field)

	return nil
}

// Rule returns the rule for the named field, or false if none is
// registered.
func (r *Registry) Rule(field string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[field]
	return rule, ok
}

// Fields returns every registered field name in registration order. The
// returned slice is a copy.
func (r *Registry) Fields() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of registered fields.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Freeze prevents further registrations. Must be called before the registry
// is used for permission checks.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}
