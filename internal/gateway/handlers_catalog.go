package gateway

import (
	"net/http"

	"github.com/rmaulana/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// specFromQuery builds a FilterSpec from query parameters. Unparsable
// bounds relax the constraint instead of failing the request: a bad
// min_price defaults to zero, a bad max_price is unbounded.
func specFromQuery(r *http.Request) domain.FilterSpec {
	q := r.URL.Query()

	spec := domain.FilterSpec{
		Category:   q.Get("category"),
		SearchTerm: q.Get("q"),
	}
	if min, err := decimal.NewFromString(q.Get("min_price")); err == nil {
		spec.MinPrice = &min
	}
	if max, err := decimal.NewFromString(q.Get("max_price")); err == nil {
		spec.MaxPrice = &max
	}
	return spec
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.FilterProducts(r.Context(), specFromQuery(r))
	if err != nil {
		s.writeInternal(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.writeInternal(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
