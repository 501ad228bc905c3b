package app

import (
	"strings"

	"github.com/rmaulana/storefront/internal/catalog/domain"
)

// Filter returns the products matching every criterion in spec, preserving
// the input order. It is a pure function: the input slice is never mutated
// and the result is always a fresh slice. An empty result is a valid
// outcome, not an error.
func Filter(products []domain.Product, spec domain.FilterSpec) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, spec) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Product, spec domain.FilterSpec) bool {
	if spec.Category != "" && p.Category != spec.Category {
		return false
	}
	if spec.MinPrice != nil && p.Price.LessThan(*spec.MinPrice) {
		return false
	}
	if spec.MaxPrice != nil && p.Price.GreaterThan(*spec.MaxPrice) {
		return false
	}
	if term := strings.TrimSpace(spec.SearchTerm); term != "" {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			return false
		}
	}
	return true
}
