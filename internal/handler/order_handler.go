package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"terrano-storefront/internal/domain"
	"terrano-storefront/internal/orders"

	"github.com/go-chi/chi/v5"
)

// OrderHandler handles order tracking and back-office order management
type OrderHandler struct {
	orders *orders.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderSvc *orders.Service) *OrderHandler {
	return &OrderHandler{orders: orderSvc}
}

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// Track returns the current state of one order
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, `{"error":"Order ID required"}`, http.StatusBadRequest)
		return
	}

	order, err := h.orders.Track(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, `{"error":"Order not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"Failed to retrieve order"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// List returns all orders, newest first
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.orders.List(r.Context())
	if err != nil {
		http.Error(w, `{"error":"Failed to retrieve orders"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"orders": all,
	})
}

// UpdateStatus transitions an order through the delivery flow
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, `{"error":"Order ID required"}`, http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"Invalid request body"}`, http.StatusBadRequest)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			http.Error(w, `{"error":"Order not found"}`, http.StatusNotFound)
		case errors.Is(err, domain.ErrInvalidOrderStatus):
			http.Error(w, `{"error":"Invalid order status"}`, http.StatusBadRequest)
		default:
			http.Error(w, `{"error":"Failed to update order"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}
