package domain

import "github.com/shopspring/decimal"

// Product is an immutable catalog record. Products are created once at
// catalog load and never mutated during a session.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}

// FilterSpec holds the active filter criteria for one catalog query.
// Zero-value fields mean "no constraint": an empty Category or SearchTerm
// matches everything, a nil MinPrice defaults to zero and a nil MaxPrice
// is unbounded.
type FilterSpec struct {
	Category   string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SearchTerm string
}
