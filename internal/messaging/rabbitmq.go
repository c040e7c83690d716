// Package messaging publishes order lifecycle events to RabbitMQ for
// downstream consumers (kitchen display, notifications).
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"terrano-storefront/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ordersExchange   = "orders.events"
	kitchenQueue     = "kitchen.orders"
	placedRoutingKey = "order.placed"
	statusRoutingKey = "order.status"
)

// OrderEvent is the wire format for order lifecycle events.
type OrderEvent struct {
	Type      string             `json:"type"` // "order.placed" or "order.status"
	OrderID   string             `json:"order_id"`
	Status    domain.OrderStatus `json:"status"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"item_count"`
	Timestamp int64              `json:"timestamp"`
}

// RabbitMQ wraps the broker connection and the order events topology.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitMQ connects and declares the order events topology.
func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	rmq := &RabbitMQ{conn: conn, channel: ch}
	if err := rmq.Setup(); err != nil {
		rmq.Close()
		return nil, err
	}
	return rmq, nil
}

// NewRabbitMQWithRetry keeps dialing until the broker answers or the
// context expires. Startup ordering with the broker is not guaranteed in
// container deployments.
func NewRabbitMQWithRetry(ctx context.Context, url string) (*RabbitMQ, error) {
	var lastErr error
	for attempt := 1; ; attempt++ {
		rmq, err := NewRabbitMQ(url)
		if err == nil {
			return rmq, nil
		}
		lastErr = err

		slog.Warn("rabbitmq not ready, retrying",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up connecting to RabbitMQ: %w", lastErr)
		case <-time.After(3 * time.Second):
		}
	}
}

// Setup declares the orders exchange and the kitchen queue bound to
// newly placed orders.
func (r *RabbitMQ) Setup() error {
	if err := r.channel.ExchangeDeclare(
		ordersExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	); err != nil {
		return fmt.Errorf("failed to declare orders exchange: %w", err)
	}

	if _, err := r.channel.QueueDeclare(
		kitchenQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		return fmt.Errorf("failed to declare kitchen queue: %w", err)
	}

	if err := r.channel.QueueBind(
		kitchenQueue,
		placedRoutingKey,
		ordersExchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to bind kitchen queue: %w", err)
	}

	slog.Info("rabbitmq setup completed successfully")
	return nil
}

func (r *RabbitMQ) publish(ctx context.Context, routingKey string, event *OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		ordersExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	slog.Info("published order event",
		slog.String("type", event.Type),
		slog.String("order_id", event.OrderID),
		slog.String("status", string(event.Status)))
	return nil
}

// PublishOrderPlaced announces a freshly placed order.
func (r *RabbitMQ) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	return r.publish(ctx, placedRoutingKey, &OrderEvent{
		Type:      placedRoutingKey,
		OrderID:   order.ID,
		Status:    order.Status,
		Total:     order.Total,
		ItemCount: order.ItemCount,
		Timestamp: time.Now().Unix(),
	})
}

// PublishOrderStatus announces an order status transition.
func (r *RabbitMQ) PublishOrderStatus(ctx context.Context, order *domain.Order) error {
	return r.publish(ctx, statusRoutingKey, &OrderEvent{
		Type:      statusRoutingKey,
		OrderID:   order.ID,
		Status:    order.Status,
		Total:     order.Total,
		ItemCount: order.ItemCount,
		Timestamp: time.Now().Unix(),
	})
}

// ConsumeKitchenOrders subscribes to the kitchen queue. Used by
// downstream workers and by integration tests.
func (r *RabbitMQ) ConsumeKitchenOrders() (<-chan amqp.Delivery, error) {
	msgs, err := r.channel.Consume(
		kitchenQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register consumer: %w", err)
	}

	slog.Info("started consuming kitchen orders",
		slog.String("queue", kitchenQueue))
	return msgs, nil
}

// IsClosed reports whether the underlying connection is gone.
func (r *RabbitMQ) IsClosed() bool {
	return r.conn == nil || r.conn.IsClosed()
}

// Close tears down the channel and connection.
func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
