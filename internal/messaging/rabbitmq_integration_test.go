//go:build integration

package messaging_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"terrano-storefront/internal/domain"
	"terrano-storefront/internal/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRabbitMQ starts a RabbitMQ container and returns its AMQP URL.
func setupRabbitMQ(t *testing.T) (string, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3.12-management-alpine",
		ExposedPorts: []string{"5672/tcp"},
		Env: map[string]string{
			"RABBITMQ_DEFAULT_USER": "guest",
			"RABBITMQ_DEFAULT_PASS": "guest",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("Server startup complete"),
			wait.ForListeningPort("5672/tcp"),
		).WithDeadline(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start RabbitMQ container")

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5672")
	require.NoError(t, err)

	url := fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())

	// Give the broker a moment to settle after the log line.
	time.Sleep(2 * time.Second)

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return url, cleanup
}

func TestRabbitMQConnection(t *testing.T) {
	url, cleanup := setupRabbitMQ(t)
	defer cleanup()

	t.Run("successful_connection", func(t *testing.T) {
		rmq, err := messaging.NewRabbitMQ(url)
		require.NoError(t, err)
		defer rmq.Close()

		assert.False(t, rmq.IsClosed())
	})

	t.Run("invalid_url_fails", func(t *testing.T) {
		_, err := messaging.NewRabbitMQ("amqp://invalid:9999/")
		assert.Error(t, err)
	})

	t.Run("close_connection", func(t *testing.T) {
		rmq, err := messaging.NewRabbitMQ(url)
		require.NoError(t, err)

		require.NoError(t, rmq.Close())
		assert.True(t, rmq.IsClosed())
	})
}

func TestPublishOrderPlaced_ReachesKitchenQueue(t *testing.T) {
	url, cleanup := setupRabbitMQ(t)
	defer cleanup()

	rmq, err := messaging.NewRabbitMQ(url)
	require.NoError(t, err)
	defer rmq.Close()

	msgs, err := rmq.ConsumeKitchenOrders()
	require.NoError(t, err)

	order := &domain.Order{
		ID:        "ord-1",
		Status:    domain.OrderReceived,
		Total:     39.6,
		ItemCount: 3,
	}
	require.NoError(t, rmq.PublishOrderPlaced(context.Background(), order))

	select {
	case delivery := <-msgs:
		var event messaging.OrderEvent
		require.NoError(t, json.Unmarshal(delivery.Body, &event))
		assert.Equal(t, "order.placed", event.Type)
		assert.Equal(t, "ord-1", event.OrderID)
		assert.Equal(t, domain.OrderReceived, event.Status)
		require.NoError(t, delivery.Ack(false))
	case <-time.After(10 * time.Second):
		t.Fatal("kitchen queue never received the order event")
	}
}

func TestPublishOrderStatus_DoesNotHitKitchenQueue(t *testing.T) {
	url, cleanup := setupRabbitMQ(t)
	defer cleanup()

	rmq, err := messaging.NewRabbitMQ(url)
	require.NoError(t, err)
	defer rmq.Close()

	msgs, err := rmq.ConsumeKitchenOrders()
	require.NoError(t, err)

	order := &domain.Order{ID: "ord-2", Status: domain.OrderPreparing}
	require.NoError(t, rmq.PublishOrderStatus(context.Background(), order))

	select {
	case delivery := <-msgs:
		t.Fatalf("status event leaked into the kitchen queue: %s", delivery.Body)
	case <-time.After(2 * time.Second):
		// Expected: the kitchen queue is bound to order.placed only.
	}
}
