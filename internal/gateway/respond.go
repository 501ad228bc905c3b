package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	authapp "github.com/rmaulana/storefront/internal/auth/app"
	catalogapp "github.com/rmaulana/storefront/internal/catalog/app"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("write response", slog.Any("err", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// writeAuthError maps a provider error to its HTTP status and the fixed
// user-facing message. Raw provider codes never leave the gateway.
func (s *Server) writeAuthError(w http.ResponseWriter, err error) {
	status, code := http.StatusBadGateway, "PROVIDER_ERROR"
	switch {
	case errors.Is(err, authapp.ErrEmailInUse):
		status, code = http.StatusConflict, "EMAIL_IN_USE"
	case errors.Is(err, authapp.ErrInvalidEmail):
		status, code = http.StatusBadRequest, "INVALID_EMAIL"
	case errors.Is(err, authapp.ErrWeakPassword):
		status, code = http.StatusBadRequest, "WEAK_PASSWORD"
	case errors.Is(err, authapp.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, authapp.ErrTooManyAttempts):
		status, code = http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"
	case errors.Is(err, authapp.ErrNotSignedIn):
		status, code = http.StatusUnauthorized, "NOT_SIGNED_IN"
	}
	s.writeError(w, status, code, authapp.Message(err))
}

func (s *Server) writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogapp.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
	case errors.Is(err, catalogapp.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid product id")
	default:
		s.log.Error("catalog error", slog.Any("err", err))
		s.writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func (s *Server) writeInternal(w http.ResponseWriter, err error) {
	s.log.Error("request failed", slog.Any("err", err))
	s.writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}
