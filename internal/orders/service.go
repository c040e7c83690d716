package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"terrano-storefront/internal/domain"
	"terrano-storefront/internal/observability"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

// EventPublisher pushes order events onto the broker. Publishing is
// best-effort: the service logs failures and keeps going.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
	PublishOrderStatus(ctx context.Context, order *domain.Order) error
}

// StatusBroadcaster fans a status event out to live order feeds.
type StatusBroadcaster interface {
	Broadcast(orderID string, message []byte)
}

// StatusEvent is the payload pushed to order feeds on every transition.
type StatusEvent struct {
	OrderID   string             `json:"order_id"`
	Status    domain.OrderStatus `json:"status"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Service turns checked-out carts into orders and drives their delivery
// status.
type Service struct {
	repo      domain.OrderRepository
	publisher EventPublisher
	feed      StatusBroadcaster
}

// NewService creates an order service. publisher and feed may be nil in
// tests; both are treated as optional side channels.
func NewService(repo domain.OrderRepository, publisher EventPublisher, feed StatusBroadcaster) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		feed:      feed,
	}
}

// Place freezes the given cart state into a new order with status
// "received".
func (s *Service) Place(ctx context.Context, cartID string, state domain.CartState) (*domain.Order, error) {
	if state.ItemCount == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	order := &domain.Order{
		ID:        uuid.New().String(),
		CartID:    cartID,
		Lines:     append([]domain.CartLine(nil), state.Lines...),
		Subtotal:  state.Subtotal,
		Tax:       state.Tax,
		Total:     state.Total,
		ItemCount: state.ItemCount,
		Status:    domain.OrderReceived,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}
	observability.OrdersPlacedTotal.Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
			observability.FromContext(ctx).Warn("failed to publish order placed event",
				"order_id", order.ID, "error", err.Error())
		}
	}
	s.broadcastStatus(order)

	return order, nil
}

// Track returns the current state of an order.
func (s *Service) Track(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateStatus transitions an order and notifies listeners.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	observability.OrderStatusUpdatesTotal.WithLabelValues(string(status)).Inc()

	if s.publisher != nil {
		if err := s.publisher.PublishOrderStatus(ctx, order); err != nil {
			observability.FromContext(ctx).Warn("failed to publish order status event",
				"order_id", order.ID, "error", err.Error())
		}
	}
	s.broadcastStatus(order)

	return order, nil
}

func (s *Service) broadcastStatus(order *domain.Order) {
	if s.feed == nil {
		return
	}

	event := StatusEvent{
		OrderID:   order.ID,
		Status:    order.Status,
		UpdatedAt: order.UpdatedAt,
	}
	data, err := json.Marshal(event)
	if err != nil {
		observability.Error("failed to marshal status event",
			"order_id", order.ID, "error", err.Error())
		return
	}
	s.feed.Broadcast(order.ID, data)
}
