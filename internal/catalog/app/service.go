package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rmaulana/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	source ProductSource
}

func NewService(source ProductSource) *Service {
	return &Service{
		source: source,
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.source.Products(ctx)
}

func (s *Service) FilterProducts(ctx context.Context, spec domain.FilterSpec) ([]domain.Product, error) {
	products, err := s.source.Products(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(products, spec), nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}

	products, err := s.source.Products(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrNotFound
}

// Categories returns the distinct product categories in first-seen order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.source.Products(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories, nil
}
