package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"terrano-storefront/internal/domain"
	"terrano-storefront/internal/middleware"
	"terrano-storefront/internal/observability"
	"terrano-storefront/internal/token"
)

// AuthHandler handles the admin session endpoints
type AuthHandler struct {
	directory     domain.PrincipalDirectory
	tokens        *token.Service
	secureCookies bool
}

// NewAuthHandler creates a new admin session handler. secureCookies
// should be true whenever the deployment serves HTTPS.
func NewAuthHandler(directory domain.PrincipalDirectory, tokens *token.Service, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		directory:     directory,
		tokens:        tokens,
		secureCookies: secureCookies,
	}
}

// LoginRequest represents an admin login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Success  bool             `json:"success"`
	Identity *domain.Identity `json:"identity"`
}

// Login authenticates admin credentials and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"Invalid request body"}`, http.StatusBadRequest)
		return
	}

	identity, err := h.directory.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		observability.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			http.Error(w, `{"error":"Invalid credentials"}`, http.StatusUnauthorized)
			return
		}
		http.Error(w, `{"error":"Authentication failed"}`, http.StatusInternalServerError)
		return
	}

	signed, err := h.tokens.Issue(identity)
	if err != nil {
		observability.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		observability.FromContext(r.Context()).Error("failed to issue session token",
			"email", identity.Email, "error", err.Error())
		http.Error(w, `{"error":"Authentication failed"}`, http.StatusInternalServerError)
		return
	}
	observability.LoginAttemptsTotal.WithLabelValues("success").Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    signed,
		Path:     "/admin",
		MaxAge:   86400, // 24 hours, matches the token TTL
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{
		Success:  true,
		Identity: identity,
	})
}

// Me returns the identity the gate attached to the request
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		http.Error(w, `{"error":"Not authenticated"}`, http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(identity)
}

// Logout clears the session cookie. It succeeds whether or not a valid
// session existed: expiring the cookie is all a logout means here.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
