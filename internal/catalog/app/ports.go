package app

import (
	"context"

	"github.com/rmaulana/storefront/internal/catalog/domain"
)

// ProductSource supplies the fixed, read-only product list. The sequence is
// ordered and stable for the lifetime of the process.
type ProductSource interface {
	Products(ctx context.Context) ([]domain.Product, error)
}
