package app

import (
	"context"

	"github.com/rmaulana/storefront/internal/auth/domain"
)

// Provider is the external identity collaborator the storefront consumes.
// Register, login and the verification mail involve a round-trip to the
// provider; CurrentIdentity is a local read.
type Provider interface {
	RegisterWithPassword(ctx context.Context, email, password string) (domain.Identity, error)
	LoginWithPassword(ctx context.Context, email, password string) (domain.Identity, error)
	Logout(ctx context.Context) error
	SendVerificationEmail(ctx context.Context, identity domain.Identity) error
	CurrentIdentity(ctx context.Context) (domain.Identity, bool)

	// OnIdentityChanged registers a callback fired on every login and
	// logout. The callback receives nil after a logout.
	OnIdentityChanged(fn func(*domain.Identity))
}
