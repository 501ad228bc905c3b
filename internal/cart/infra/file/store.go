// Package file persists the whole cart table as one JSON document on disk,
// mirroring the single-blob layout the storefront originally used.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/rmaulana/storefront/internal/cart/domain"
)

type Store struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
}

func New(path string, log *slog.Logger) *Store {
	return &Store{
		path: path,
		log:  log,
	}
}

func (s *Store) GetCart(ctx context.Context, identityKey string) (domain.Cart, error) {
	if identityKey == "" {
		return domain.Cart{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.readAll()
	return table[identityKey].Normalize(), nil
}

func (s *Store) SaveCart(ctx context.Context, identityKey string, cart domain.Cart) error {
	if identityKey == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.readAll()
	table[identityKey] = cart.Clone()
	return s.writeAll(table)
}

func (s *Store) RemoveCart(ctx context.Context, identityKey string) error {
	if identityKey == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.readAll()
	if _, ok := table[identityKey]; !ok {
		return nil
	}
	delete(table, identityKey)
	return s.writeAll(table)
}

// readAll loads the table, treating a missing or unparsable file as empty.
// Corruption is logged and never propagated.
func (s *Store) readAll() domain.Table {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("cart file unreadable, starting empty", slog.String("path", s.path), slog.Any("err", err))
		}
		return domain.Table{}
	}

	var table domain.Table
	if err := json.Unmarshal(raw, &table); err != nil {
		s.log.Warn("cart file corrupt, starting empty", slog.String("path", s.path), slog.Any("err", err))
		return domain.Table{}
	}
	if table == nil {
		table = domain.Table{}
	}
	return table
}

// writeAll replaces the file atomically via a temp file rename.
func (s *Store) writeAll(table domain.Table) error {
	raw, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode cart table: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".carts-*.json")
	if err != nil {
		return fmt.Errorf("create temp cart file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write cart file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cart file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace cart file: %w", err)
	}
	return nil
}
