package app

import (
	"context"

	"github.com/rmaulana/storefront/internal/cart/domain"
)

// Store persists the cart table keyed by identity. Implementations share one
// contract: GetCart returns an empty cart for an empty or unknown key and
// degrades corrupt stored data to an empty cart instead of surfacing a parse
// failure; SaveCart replaces the identity's entry wholesale and is a no-op
// for an empty key; RemoveCart is a no-op for an absent key. Errors are
// reserved for backend failures, never for missing data.
type Store interface {
	GetCart(ctx context.Context, identityKey string) (domain.Cart, error)
	SaveCart(ctx context.Context, identityKey string, cart domain.Cart) error
	RemoveCart(ctx context.Context, identityKey string) error
}

// IdentityResolver yields the identity key the next operation acts on.
// The service re-resolves on every call and caches nothing across identity
// changes.
type IdentityResolver interface {
	CurrentIdentityKey(ctx context.Context) (string, bool)
}
