package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Cart metrics
	CartActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_actions_total",
			Help: "Total number of cart ledger actions applied",
		},
		[]string{"action"},
	)

	CartsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "carts_active",
			Help: "Number of live carts in the registry",
		},
	)

	// Checkout and order metrics
	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of orders placed through checkout",
		},
	)

	OrderStatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_updates_total",
			Help: "Total number of order status transitions",
		},
		[]string{"status"},
	)

	PaymentRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_request_duration_seconds",
			Help:    "Payment processor call latency in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	// Admin session metrics
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_login_attempts_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"result"},
	)

	TokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_token_verifications_total",
			Help: "Total number of session token verifications at the gate",
		},
		[]string{"result"},
	)

	// Order feed metrics
	OrderFeedConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_feed_connections_active",
			Help: "Number of active order-status WebSocket connections",
		},
	)

	OrderFeedEventsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_feed_events_sent_total",
			Help: "Total number of status events pushed to order feeds",
		},
	)
)
