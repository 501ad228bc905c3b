package gateway

import (
	"encoding/json"
	"net/http"

	cartapp "github.com/rmaulana/storefront/internal/cart/app"
	"github.com/rmaulana/storefront/internal/cart/domain"
	"github.com/shopspring/decimal"
)

type cartResponse struct {
	Items     []domain.Line   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int64           `json:"item_count"`
}

func cartPayload(summary cartapp.Summary) cartResponse {
	items := summary.Lines
	if items == nil {
		items = []domain.Line{}
	}
	return cartResponse{
		Items:     items,
		Total:     summary.Total,
		ItemCount: summary.ItemCount,
	}
}

func (s *Server) writeCart(w http.ResponseWriter, r *http.Request, status int) {
	summary, err := s.cart.Summary(r.Context())
	if err != nil {
		s.writeInternal(w, err)
		return
	}
	s.writeJSON(w, status, cartPayload(summary))
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.writeCart(w, r, http.StatusOK)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "malformed request body")
		return
	}

	// The line embeds the product as it is in the catalog right now; later
	// catalog changes leave the line alone.
	product, err := s.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		s.writeCatalogError(w, err)
		return
	}

	if err := s.cart.AddItem(r.Context(), product); err != nil {
		s.writeInternal(w, err)
		return
	}
	s.writeCart(w, r, http.StatusOK)
}

func (s *Server) handleAdjustItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta int64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "malformed request body")
		return
	}

	if err := s.cart.AdjustQuantity(r.Context(), r.PathValue("id"), req.Delta); err != nil {
		s.writeInternal(w, err)
		return
	}
	s.writeCart(w, r, http.StatusOK)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.RemoveItem(r.Context(), r.PathValue("id")); err != nil {
		s.writeInternal(w, err)
		return
	}
	s.writeCart(w, r, http.StatusOK)
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.ClearCart(r.Context()); err != nil {
		s.writeInternal(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
