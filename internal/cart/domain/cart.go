package domain

import (
	catalog "github.com/rmaulana/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// Line is one product entry in a cart. The product fields are a snapshot
// taken when the line was added: later catalog changes do not reach lines
// already in a cart. A persisted line always has Quantity >= 1.
type Line struct {
	catalog.Product
	Quantity int64 `json:"quantity"`
}

// NewLine snapshots product into a line with quantity 1.
func NewLine(product catalog.Product) Line {
	return Line{Product: product, Quantity: 1}
}

// Cart is an ordered sequence of lines scoped to one identity, with at most
// one line per product id.
type Cart []Line

// Table is the persisted mapping from identity key to that identity's cart.
type Table map[string]Cart

// Find returns the index of the line holding productID.
func (c Cart) Find(productID string) (int, bool) {
	for i, line := range c {
		if line.ID == productID {
			return i, true
		}
	}
	return 0, false
}

// Total sums price times quantity over all lines. It is computed fresh on
// every call and never persisted.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}

// ItemCount sums the quantities over all lines.
func (c Cart) ItemCount() int64 {
	var count int64
	for _, line := range c {
		count += line.Quantity
	}
	return count
}

// Clone returns an independent copy of the cart.
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	cp := make(Cart, len(c))
	copy(cp, c)
	return cp
}

// Normalize drops lines a store must not serve: missing product id,
// quantity below one (including a missing quantity field in persisted
// data), or a negative price. Order of the surviving lines is preserved.
func (c Cart) Normalize() Cart {
	out := make(Cart, 0, len(c))
	for _, line := range c {
		if line.ID == "" || line.Quantity < 1 || line.Price.IsNegative() {
			continue
		}
		out = append(out, line)
	}
	return out
}
