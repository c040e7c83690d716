package handler

import (
	"encoding/json"
	"net/http"

	"terrano-storefront/internal/loyalty"
)

// LoyaltyHandler exposes the shopper's loyalty balance
type LoyaltyHandler struct {
	loyalty *loyalty.Service
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(loyaltySvc *loyalty.Service) *LoyaltyHandler {
	return &LoyaltyHandler{loyalty: loyaltySvc}
}

// Balance returns the loyalty balance for the shopper's cart cookie. A
// shopper without a cart simply has zero points.
func (h *LoyaltyHandler) Balance(w http.ResponseWriter, r *http.Request) {
	points := 0
	if cookie, err := r.Cookie(CartCookieName); err == nil && cookie.Value != "" {
		points = h.loyalty.Balance(cookie.Value)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"points": points})
}
