package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// OrderStatus tracks an order through the kitchen and out the door.
type OrderStatus string

const (
	OrderReceived   OrderStatus = "received"
	OrderPreparing  OrderStatus = "preparing"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderReceived, OrderPreparing, OrderDelivering, OrderDelivered:
		return true
	}
	return false
}

// Order is a placed order: a frozen copy of the cart lines and totals at
// checkout time plus delivery progress.
type Order struct {
	ID        string      `json:"id"`
	CartID    string      `json:"cart_id"`
	Lines     []CartLine  `json:"lines"`
	Subtotal  float64     `json:"subtotal"`
	Tax       float64     `json:"tax"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"item_count"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) (*Order, error)
}
