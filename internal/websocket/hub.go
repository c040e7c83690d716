package websocket

import (
	"context"
	"log/slog"

	"terrano-storefront/internal/observability"
)

// BroadcastMessage is a status event addressed to one order's feed
type BroadcastMessage struct {
	OrderID string
	Message []byte
}

// Hub maintains active feed clients and fans out order status events
type Hub struct {
	// Registered clients by order
	clients map[string]map[*Client]bool

	// Broadcast channel
	broadcast chan *BroadcastMessage

	// Register client
	register chan *Client

	// Unregister client
	unregister chan *Client

	// Shutdown signal
	done chan struct{}
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *BroadcastMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) error {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			slog.Info("order feed hub shutting down gracefully")
			return ctx.Err()

		case client := <-h.register:
			// Create order feed map if it doesn't exist
			if h.clients[client.orderID] == nil {
				h.clients[client.orderID] = make(map[*Client]bool)
			}
			h.clients[client.orderID][client] = true
			observability.OrderFeedConnectionsActive.Inc()
			slog.Info("feed client registered",
				slog.String("order_id", client.orderID))

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			// Send to every client watching this order
			if clients, ok := h.clients[message.OrderID]; ok {
				for client := range clients {
					select {
					case client.send <- message.Message:
						observability.OrderFeedEventsSent.Inc()
					default:
						// Client's send buffer is full, close connection
						h.closeClientSend(client)
						delete(clients, client)
					}
				}
			}
		}
	}
}

// unregisterClient safely removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.clients[client.orderID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			h.closeClientSend(client)
			observability.OrderFeedConnectionsActive.Dec()
			slog.Info("feed client unregistered",
				slog.String("order_id", client.orderID))

			// Clean up empty feed
			if len(clients) == 0 {
				delete(h.clients, client.orderID)
			}
		}
	}
}

// closeClientSend safely closes a client's send channel
func (h *Hub) closeClientSend(client *Client) {
	select {
	case <-client.send:
		// Channel already closed
	default:
		close(client.send)
	}
}

// shutdown performs graceful cleanup of all connections
func (h *Hub) shutdown() {
	close(h.done)

	for orderID, clients := range h.clients {
		for client := range clients {
			h.closeClientSend(client)
			slog.Info("closed feed client connection",
				slog.String("order_id", orderID))
		}
	}

	slog.Info("order feed hub shutdown complete")
}

// Broadcast sends a status event to every client watching an order
func (h *Hub) Broadcast(orderID string, message []byte) {
	h.broadcast <- &BroadcastMessage{
		OrderID: orderID,
		Message: message,
	}
}

// Register registers a client with the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
