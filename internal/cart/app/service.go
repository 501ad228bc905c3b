package app

import (
	"context"
	"log/slog"

	"github.com/rmaulana/storefront/internal/cart/domain"
	catalog "github.com/rmaulana/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// Service applies the cart business rules for the current identity. Every
// operation resolves the identity fresh through the injected resolver; with
// no identity resolved, reads return an empty cart and writes are silent
// no-ops. Missing lines are no-ops as well, never errors.
type Service struct {
	store    Store
	sessions IdentityResolver
	log      *slog.Logger
}

func NewService(store Store, sessions IdentityResolver, log *slog.Logger) *Service {
	return &Service{
		store:    store,
		sessions: sessions,
		log:      log,
	}
}

func (s *Service) GetCart(ctx context.Context) (domain.Cart, error) {
	key, ok := s.sessions.CurrentIdentityKey(ctx)
	if !ok {
		return domain.Cart{}, nil
	}
	return s.store.GetCart(ctx, key)
}

// AddItem increments the quantity of the line holding product.ID, or appends
// a new line with quantity 1 embedding the given product snapshot.
func (s *Service) AddItem(ctx context.Context, product catalog.Product) error {
	key, ok := s.sessions.CurrentIdentityKey(ctx)
	if !ok {
		return nil
	}

	cart, err := s.store.GetCart(ctx, key)
	if err != nil {
		return err
	}

	if i, found := cart.Find(product.ID); found {
		cart[i].Quantity++
	} else {
		cart = append(cart, domain.NewLine(product))
	}

	return s.store.SaveCart(ctx, key, cart)
}

// RemoveItem drops the line holding productID. An absent id leaves the cart
// as it was.
func (s *Service) RemoveItem(ctx context.Context, productID string) error {
	key, ok := s.sessions.CurrentIdentityKey(ctx)
	if !ok {
		return nil
	}

	cart, err := s.store.GetCart(ctx, key)
	if err != nil {
		return err
	}

	kept := make(domain.Cart, 0, len(cart))
	for _, line := range cart {
		if line.ID != productID {
			kept = append(kept, line)
		}
	}

	return s.store.SaveCart(ctx, key, kept)
}

// AdjustQuantity adds delta to the quantity of the line holding productID.
// A resulting quantity of zero or below removes the line. Adjusting a line
// that does not exist is a no-op: only AddItem creates lines.
func (s *Service) AdjustQuantity(ctx context.Context, productID string, delta int64) error {
	key, ok := s.sessions.CurrentIdentityKey(ctx)
	if !ok {
		return nil
	}

	cart, err := s.store.GetCart(ctx, key)
	if err != nil {
		return err
	}

	i, found := cart.Find(productID)
	if !found {
		return nil
	}

	cart[i].Quantity += delta
	if cart[i].Quantity <= 0 {
		cart = append(cart[:i], cart[i+1:]...)
	}

	return s.store.SaveCart(ctx, key, cart)
}

// ClearCart deletes the identity's entry from the store.
func (s *Service) ClearCart(ctx context.Context) error {
	key, ok := s.sessions.CurrentIdentityKey(ctx)
	if !ok {
		return nil
	}
	return s.store.RemoveCart(ctx, key)
}

// Summary is the presentation-facing view of a cart: its lines plus the
// derived total and item count, computed fresh on every read.
type Summary struct {
	Lines     []domain.Line
	Total     decimal.Decimal
	ItemCount int64
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	cart, err := s.GetCart(ctx)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Lines:     cart,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
	}, nil
}
