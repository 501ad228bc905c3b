// Package sqlite backs the cart table with a SQLite database, one row per
// identity key holding the serialized cart.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/rmaulana/storefront/internal/cart/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS carts (
    identity_key TEXT PRIMARY KEY,
    payload      TEXT NOT NULL,
    updated_at   INTEGER NOT NULL
);
`

type Store struct {
	sqlDB *sql.DB
	log   *slog.Logger
	now   func() time.Time
}

// Open opens the database at path and ensures the schema exists.
func Open(path string, log *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ensure carts table: %w", err)
	}

	return &Store{
		sqlDB: sqlDB,
		log:   log,
		now:   time.Now,
	}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) GetCart(ctx context.Context, identityKey string) (domain.Cart, error) {
	if identityKey == "" {
		return domain.Cart{}, nil
	}

	var payload string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM carts WHERE identity_key = ?`, identityKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
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

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO carts (identity_key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(identity_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		identityKey, string(payload), s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *Store) RemoveCart(ctx context.Context, identityKey string) error {
	if identityKey == "" {
		return nil
	}

	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM carts WHERE identity_key = ?`, identityKey,
	); err != nil {
		return fmt.Errorf("remove cart: %w", err)
	}
	return nil
}
