package fieldgate

import "context"

type principalContextKey struct{}

// WithPrincipal attaches the acting principal to ctx. [ContextResolver]
// reads it back; hosts that resolve identity elsewhere (for example from a
// bearer token) supply their own [PrincipalResolver] instead.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext returns the principal attached by [WithPrincipal],
// or false when none is present or the principal is anonymous.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}

	p, ok := ctx.Value(principalContextKey{}).(Principal)
	if !ok || p.Anonymous() {
		return Principal{}, false
	}

	return p, true
}

// ContextResolver is the default [PrincipalResolver]: it reads the
// principal attached to the context by [WithPrincipal].
type ContextResolver struct{}

// Resolve implements [PrincipalResolver].
func (ContextResolver) Resolve(ctx context.Context) (Principal, bool) {
	return PrincipalFromContext(ctx)
}
