// Package memory keeps the cart table in process memory. Carts vanish on
// restart; meant for tests and throwaway environments.
package memory

import (
	"context"
	"sync"

	"github.com/rmaulana/storefront/internal/cart/domain"
)

type Store struct {
	mu    sync.RWMutex
	table domain.Table
}

func New() *Store {
	return &Store{table: domain.Table{}}
}

func (s *Store) GetCart(ctx context.Context, identityKey string) (domain.Cart, error) {
	if identityKey == "" {
		return domain.Cart{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.table[identityKey]
	if !ok {
		return domain.Cart{}, nil
	}
	return cart.Clone(), nil
}

func (s *Store) SaveCart(ctx context.Context, identityKey string, cart domain.Cart) error {
	if identityKey == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.table[identityKey] = cart.Clone()
	return nil
}

func (s *Store) RemoveCart(ctx context.Context, identityKey string) error {
	if identityKey == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.table, identityKey)
	return nil
}
