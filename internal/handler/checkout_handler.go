package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"terrano-storefront/internal/cart"
	"terrano-storefront/internal/domain"
	"terrano-storefront/internal/loyalty"
	"terrano-storefront/internal/observability"
	"terrano-storefront/internal/orders"
	"terrano-storefront/internal/payment"
)

// PaymentCharger is the slice of the payment client checkout needs.
type PaymentCharger interface {
	Charge(ctx context.Context, charge payment.ChargeRequest) (*payment.ChargeResult, error)
}

// CheckoutHandler turns a cart into a paid order
type CheckoutHandler struct {
	registry *cart.Registry
	payments PaymentCharger
	orders   *orders.Service
	loyalty  *loyalty.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(registry *cart.Registry, payments PaymentCharger, orderSvc *orders.Service, loyaltySvc *loyalty.Service) *CheckoutHandler {
	return &CheckoutHandler{
		registry: registry,
		payments: payments,
		orders:   orderSvc,
		loyalty:  loyaltySvc,
	}
}

// CheckoutResponse represents a completed checkout
type CheckoutResponse struct {
	Order         *domain.Order `json:"order"`
	ChargeID      string        `json:"charge_id"`
	LoyaltyPoints int           `json:"loyalty_points"`
}

// Checkout charges the cart total, freezes the cart into an order,
// awards loyalty points and empties the cart. The cart is only cleared
// once the order is safely stored.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(CartCookieName)
	if err != nil || cookie.Value == "" {
		http.Error(w, `{"error":"No cart to check out"}`, http.StatusBadRequest)
		return
	}
	cartID := cookie.Value

	store := h.registry.Get(cartID)
	state := store.State()
	if state.ItemCount == 0 {
		http.Error(w, `{"error":"Cart is empty"}`, http.StatusBadRequest)
		return
	}

	charge, err := h.payments.Charge(r.Context(), payment.ChargeRequest{
		Amount:    state.Total,
		Currency:  "EUR",
		Reference: cartID,
	})
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrPaymentDeclined):
			http.Error(w, `{"error":"Payment was declined"}`, http.StatusPaymentRequired)
		default:
			observability.FromContext(r.Context()).Error("payment processor unreachable",
				"cart_id", cartID, "error", err.Error())
			http.Error(w, `{"error":"Payment processor unavailable, please retry"}`, http.StatusBadGateway)
		}
		return
	}

	order, err := h.orders.Place(r.Context(), cartID, state)
	if err != nil {
		observability.FromContext(r.Context()).Error("failed to place order after charge",
			"cart_id", cartID, "charge_id", charge.ID, "error", err.Error())
		http.Error(w, `{"error":"Failed to place order"}`, http.StatusInternalServerError)
		return
	}

	points := h.loyalty.Award(cartID, order.Total)
	store.Clear()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CheckoutResponse{
		Order:         order,
		ChargeID:      charge.ID,
		LoyaltyPoints: points,
	})
}
