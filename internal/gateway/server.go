// Package gateway exposes the storefront over HTTP/JSON.
package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	authdomain "github.com/rmaulana/storefront/internal/auth/domain"
	"github.com/rmaulana/storefront/internal/auth/session"
	cartapp "github.com/rmaulana/storefront/internal/cart/app"
	catalogapp "github.com/rmaulana/storefront/internal/catalog/app"
)

// IdentityProvider is the slice of the identity collaborator the gateway
// consumes. Lookup and VerifyToken let the transport resolve bearer tokens
// and verification links on top of the core capability set.
type IdentityProvider interface {
	RegisterWithPassword(ctx context.Context, email, password string) (authdomain.Identity, error)
	LoginWithPassword(ctx context.Context, email, password string) (authdomain.Identity, error)
	Logout(ctx context.Context) error
	SendVerificationEmail(ctx context.Context, identity authdomain.Identity) error
	Lookup(ctx context.Context, key string) (authdomain.Identity, bool)
	VerifyToken(ctx context.Context, token string) (authdomain.Identity, error)
}

type Server struct {
	catalog *catalogapp.Service
	cart    *cartapp.Service
	auth    IdentityProvider
	log     *slog.Logger
}

func NewServer(catalog *catalogapp.Service, cart *cartapp.Service, auth IdentityProvider, log *slog.Logger) *Server {
	return &Server{
		catalog: catalog,
		cart:    cart,
		auth:    auth,
		log:     log,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	mux.HandleFunc("GET /v1/products", s.handleListProducts)
	mux.HandleFunc("GET /v1/categories", s.handleCategories)

	mux.HandleFunc("POST /v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /v1/auth/logout", s.handleLogout)
	mux.HandleFunc("POST /v1/auth/verification", s.handleResendVerification)
	mux.HandleFunc("GET /v1/auth/verify", s.handleVerify)

	mux.HandleFunc("GET /v1/cart", s.withIdentity(s.handleGetCart))
	mux.HandleFunc("POST /v1/cart/items", s.withIdentity(s.handleAddItem))
	mux.HandleFunc("PATCH /v1/cart/items/{id}", s.withIdentity(s.handleAdjustItem))
	mux.HandleFunc("DELETE /v1/cart/items/{id}", s.withIdentity(s.handleRemoveItem))
	mux.HandleFunc("DELETE /v1/cart", s.withIdentity(s.handleClearCart))

	return mux
}

// withIdentity pins the identity authenticated by the bearer token, if any.
// Requests without a valid token run anonymously: cart reads come back
// empty and cart writes are no-ops, never errors.
func (s *Server) withIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if key := bearerToken(r); key != "" {
			if identity, ok := s.auth.Lookup(r.Context(), key); ok {
				r = r.WithContext(session.WithIdentityKey(r.Context(), identity.Key))
			}
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
