// Package session resolves the identity key cart operations act on.
package session

import (
	"context"

	"github.com/rmaulana/storefront/internal/auth/domain"
)

type ctxKey struct{}

// WithIdentityKey pins the identity for the rest of the request, letting a
// transport carry the key it authenticated instead of relying on the
// provider's ambient session.
func WithIdentityKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKey{}, key)
}

// IdentityKeyFromContext reports the pinned identity key, if any.
func IdentityKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(ctxKey{}).(string)
	return key, ok && key != ""
}

// CurrentIdentitySource is the slice of the identity provider the adapter
// needs.
type CurrentIdentitySource interface {
	CurrentIdentity(ctx context.Context) (domain.Identity, bool)
}

// Adapter exposes the current identity key. It holds no state of its own:
// every call re-queries the context and the provider, so nothing survives
// an identity change.
type Adapter struct {
	provider CurrentIdentitySource
}

func NewAdapter(provider CurrentIdentitySource) *Adapter {
	return &Adapter{provider: provider}
}

// NewRequestScoped resolves identities from the request context only.
// Transports serving many users at once use this: there is no ambient
// session an anonymous request could accidentally inherit.
func NewRequestScoped() *Adapter {
	return &Adapter{}
}

func (a *Adapter) CurrentIdentityKey(ctx context.Context) (string, bool) {
	if key, ok := IdentityKeyFromContext(ctx); ok {
		return key, true
	}
	if a.provider == nil {
		return "", false
	}

	identity, ok := a.provider.CurrentIdentity(ctx)
	if !ok || identity.Key == "" {
		return "", false
	}
	return identity.Key, true
}
