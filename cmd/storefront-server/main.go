package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"terrano-storefront/internal/auth"
	"terrano-storefront/internal/cart"
	"terrano-storefront/internal/config"
	"terrano-storefront/internal/domain"
	"terrano-storefront/internal/handler"
	"terrano-storefront/internal/loyalty"
	"terrano-storefront/internal/menu"
	"terrano-storefront/internal/messaging"
	"terrano-storefront/internal/middleware"
	"terrano-storefront/internal/observability"
	"terrano-storefront/internal/orders"
	"terrano-storefront/internal/payment"
	"terrano-storefront/internal/token"
	"terrano-storefront/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const cartTTL = 24 * time.Hour

func main() {
	cfg := config.Load()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}
	observability.InitLogger(logLevel, logFormat)

	slog.Info("starting storefront server")

	rmqCtx, rmqCancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer rmqCancel()

	rmq, err := messaging.NewRabbitMQWithRetry(rmqCtx, cfg.RabbitMQURL)
	if err != nil {
		slog.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rmq.Close()

	directory, err := auth.NewFixtureDirectory()
	if err != nil {
		slog.Error("failed to seed principal directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokens := token.NewService(cfg.TokenSecret, cfg.TokenIssuer, cfg.TokenAudience)
	menuRepo := menu.NewFixtureRepository()
	registry := cart.NewRegistry(cartTTL)
	loyaltySvc := loyalty.NewService()
	payments := payment.NewClient(cfg.PaymentAPIURL)

	hub := websocket.NewHub()

	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go func() {
		if err := hub.Run(hubCtx); err != nil && err != context.Canceled {
			slog.Error("hub error", slog.String("error", err.Error()))
		}
	}()
	slog.Info("order feed hub started")

	orderSvc := orders.NewService(orders.NewMemoryRepository(), rmq, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startCartSweep(ctx, registry)
	slog.Info("cart sweep task started")

	authHandler := handler.NewAuthHandler(directory, tokens, cfg.IsProduction())
	menuHandler := handler.NewMenuHandler(menuRepo)
	cartHandler := handler.NewCartHandler(registry, menuRepo, cfg.IsProduction())
	checkoutHandler := handler.NewCheckoutHandler(registry, payments, orderSvc, loyaltySvc)
	orderHandler := handler.NewOrderHandler(orderSvc)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltySvc)
	feedHandler := handler.NewOrderFeedHandler(hub, orderSvc)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CORS(middleware.ParseOrigins(cfg.AllowedOrigins)))
	r.Use(middleware.Metrics())
	r.Use(middleware.Gate(tokens))
	// r.Use(middleware.OpenAPIValidator(middleware.DefaultOpenAPIValidatorConfig()))

	r.Get("/health", handler.Health)
	r.Get("/health/ready", handler.Ready(rmq))
	r.Handle("/metrics", promhttp.Handler())

	loginLimiter := middleware.NewRateLimiter(1, 5)
	apiLimiter := middleware.NewRateLimiter(20, 50)
	defer loginLimiter.Stop()
	defer apiLimiter.Stop()

	r.Route("/admin", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware())
			r.Post("/login", authHandler.Login)
		})

		r.Get("/me", authHandler.Me)
		r.Post("/logout", authHandler.Logout)

		r.Route("/api/orders", func(r chi.Router) {
			r.Use(middleware.RequirePermission(domain.PermOrders))
			r.Get("/", orderHandler.List)
			r.Put("/{id}/status", orderHandler.UpdateStatus)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiLimiter.Middleware())

		r.Get("/menu", menuHandler.List)
		r.Get("/menu/{id}", menuHandler.Get)

		r.Get("/cart", cartHandler.Get)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Delete("/cart/items/{id}", cartHandler.RemoveItem)
		r.Put("/cart/items/{id}", cartHandler.UpdateQuantity)
		r.Post("/cart/items/{id}/increase", cartHandler.IncreaseQuantity)
		r.Post("/cart/items/{id}/decrease", cartHandler.DecreaseQuantity)
		r.Post("/cart/clear", cartHandler.Clear)
		r.Post("/cart/open", cartHandler.Open)
		r.Post("/cart/close", cartHandler.Close)

		r.Post("/checkout", checkoutHandler.Checkout)
		r.Get("/orders/{id}", orderHandler.Track)
		r.Get("/loyalty", loyaltyHandler.Balance)
	})

	r.Get("/ws/orders/{id}", feedHandler.HandleConnection)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("storefront server listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}

	cancel()
	hubCancel()

	time.Sleep(100 * time.Millisecond)

	slog.Info("server stopped gracefully")
}

// startCartSweep drops carts that have been idle past their TTL
func startCartSweep(ctx context.Context, registry *cart.Registry) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping cart sweep task")
			return
		case <-ticker.C:
			removed := registry.Sweep()
			observability.CartsActive.Set(float64(registry.Len()))
			if removed > 0 {
				slog.Info("cart sweep completed", slog.Int("carts_removed", removed))
			}
		}
	}
}
