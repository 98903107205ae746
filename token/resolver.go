package token

import (
	"context"

	"github.com/fieldgate/fieldgate/schema"
)

type tokenContextKey struct{}

// Bind attaches a raw bearer token to ctx for [Resolver.Resolve] to pick
// up. Transport adapters call this once per request.
func Bind(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func fromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	tok, ok := ctx.Value(tokenContextKey{}).(string)
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

// Resolver resolves principals from bearer tokens bound into the call
// context with [Bind]. It satisfies the fieldgate PrincipalResolver
// contract.
type Resolver struct {
	manager *Manager
}

// NewResolver creates a Resolver backed by mgr.
func NewResolver(mgr *Manager) *Resolver {
	return &Resolver{manager: mgr}
}

// Resolve parses the context's bearer token into a principal. A missing,
// expired, or otherwise invalid token resolves to anonymous — the gateway
// rejects anonymous mutations itself, so resolution failures are not
// errors here.
func (r *Resolver) Resolve(ctx context.Context) (schema.Principal, bool) {
	if r == nil || r.manager == nil {
		return schema.Principal{}, false
	}

	tok, ok := fromContext(ctx)
	if !ok {
		return schema.Principal{}, false
	}

	p, err := r.manager.Parse(tok)
	if err != nil {
		return schema.Principal{}, false
	}

	return p, true
}
