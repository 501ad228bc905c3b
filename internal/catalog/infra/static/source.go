// Package static supplies the catalog from fixed in-memory data.
package static

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rmaulana/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

type Source struct {
	products []domain.Product
}

// New builds a source over the given product list. The list is copied so the
// caller cannot mutate the catalog afterwards.
func New(products []domain.Product) *Source {
	cp := make([]domain.Product, len(products))
	copy(cp, products)
	return &Source{products: cp}
}

// NewDemo returns the built-in demo storefront catalog.
func NewDemo() *Source {
	return New(demoProducts())
}

// LoadFile reads a JSON product list from path.
func LoadFile(path string) (*Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}
	return New(products), nil
}

func (s *Source) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cp := make([]domain.Product, len(s.products))
	copy(cp, s.products)
	return cp, nil
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func demoProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Vintage Camera", Price: price("250.00"), Category: "electronics", Image: "/assets/camera.jpg"},
		{ID: "2", Name: "Leather Satchel", Price: price("120.00"), Category: "bags", Image: "/assets/satchel.jpeg"},
		{ID: "3", Name: "Espresso Machine", Price: price("350.00"), Category: "home", Image: "/assets/espresso.jpeg"},
		{ID: "4", Name: "Noise-Cancelling Headphones", Price: price("299.99"), Category: "electronics", Image: "/assets/headphones.jpeg"},
		{ID: "5", Name: "Handcrafted Mug", Price: price("25.00"), Category: "home", Image: "/assets/mug.jpg"},
		{ID: "6", Name: "Travel Backpack", Price: price("95.00"), Category: "bags", Image: "/assets/bag.jpeg"},
		{ID: "7", Name: "Smart Watch", Price: price("180.00"), Category: "electronics", Image: "/assets/watch.jpeg"},
		{ID: "8", Name: "Throw Blanket", Price: price("50.00"), Category: "home", Image: "/assets/blanket.jpeg"},
	}
}
