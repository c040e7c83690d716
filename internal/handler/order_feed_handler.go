package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"terrano-storefront/internal/domain"
	"terrano-storefront/internal/orders"
	ws "terrano-storefront/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		// In production, check against allowed origins
		return true
	},
}

// OrderFeedHandler upgrades order tracking pages to a live status feed
type OrderFeedHandler struct {
	hub    *ws.Hub
	orders *orders.Service
}

// NewOrderFeedHandler creates a new order feed handler
func NewOrderFeedHandler(hub *ws.Hub, orderSvc *orders.Service) *OrderFeedHandler {
	return &OrderFeedHandler{
		hub:    hub,
		orders: orderSvc,
	}
}

// HandleConnection upgrades the connection and attaches it to the
// order's feed. The current status is pushed immediately so the page
// renders without waiting for the next transition.
func (h *OrderFeedHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, `{"error":"Order ID required"}`, http.StatusBadRequest)
		return
	}

	order, err := h.orders.Track(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, `{"error":"Order not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"Failed to retrieve order"}`, http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()))
		return
	}

	client := ws.NewClient(r.Context(), h.hub, conn, orderID)
	h.hub.Register(client)

	snapshot := orders.StatusEvent{
		OrderID:   order.ID,
		Status:    order.Status,
		UpdatedAt: order.UpdatedAt,
	}
	if data, err := json.Marshal(snapshot); err == nil {
		client.QueueMessage(data)
	}

	go client.WritePump()
	go client.ReadPump()
}
