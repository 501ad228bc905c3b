package gateway

import (
	"encoding/json"
	"net/http"

	authapp "github.com/rmaulana/storefront/internal/auth/app"
	authdomain "github.com/rmaulana/storefront/internal/auth/domain"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResponse struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}

func identityPayload(identity authdomain.Identity, message string) identityResponse {
	return identityResponse{
		Token:    identity.Key,
		Email:    identity.Email,
		Verified: identity.Verified,
		Message:  message,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "malformed request body")
		return
	}

	identity, err := s.auth.RegisterWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeAuthError(w, err)
		return
	}

	const info = "Verification email sent. Please check your inbox and click the link. Then return here."
	s.writeJSON(w, http.StatusCreated, identityPayload(identity, info))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "malformed request body")
		return
	}

	identity, err := s.auth.LoginWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeAuthError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, identityPayload(identity, ""))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context()); err != nil {
		s.writeAuthError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	identity, ok := s.auth.Lookup(r.Context(), token)
	if token == "" || !ok {
		s.writeAuthError(w, authapp.ErrNotSignedIn)
		return
	}

	if err := s.auth.SendVerificationEmail(r.Context(), identity); err != nil {
		s.writeAuthError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Verification email resent. Check your inbox.",
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	identity, err := s.auth.VerifyToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_TOKEN", "verification link is invalid or expired")
		return
	}
	s.writeJSON(w, http.StatusOK, identityPayload(identity, "Email verified."))
}
