// Package redis backs the cart table with Redis, one JSON value per
// identity key.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"github.com/rmaulana/storefront/internal/cart/domain"
)

const keyPrefix = "cart:"

type Store struct {
	client *redis.Client
	log    *slog.Logger
}

// New wraps an existing client.
func New(client *redis.Client, log *slog.Logger) *Store {
	return &Store{
		client: client,
		log:    log,
	}
}

// Open connects to addr ("host:port" or a redis:// URL) and pings it.
func Open(ctx context.Context, addr string, log *slog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client, log), nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) GetCart(ctx context.Context, identityKey string) (domain.Cart, error) {
	if identityKey == "" {
		return domain.Cart{}, nil
	}

	payload, err := s.client.Get(ctx, keyPrefix+identityKey).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(payload), &cart); err != nil {
		s.log.Warn("stored cart corrupt, serving empty", slog.String("identity", identityKey), slog.Any("err", err))
		return domain.Cart{}, nil
	}
	return cart.Normalize(), nil
}

func (s *Store) SaveCart(ctx context.Context, identityKey string, cart domain.Cart) error {
	if identityKey == "" {
		return nil
	}

	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+identityKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *Store) RemoveCart(ctx context.Context, identityKey string) error {
	if identityKey == "" {
		return nil
	}

	if err := s.client.Del(ctx, keyPrefix+identityKey).Err(); err != nil {
		return fmt.Errorf("remove cart: %w", err)
	}
	return nil
}
