// cmd/portal/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/loyalty-portal/internal/cache"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/domain/cart"
	"github.com/your-org/loyalty-portal/internal/domain/catalog"
	"github.com/your-org/loyalty-portal/internal/domain/checkout"
	"github.com/your-org/loyalty-portal/internal/domain/order"
	"github.com/your-org/loyalty-portal/internal/domain/session"
	"github.com/your-org/loyalty-portal/internal/domain/ui"
	redisinfra "github.com/your-org/loyalty-portal/internal/infrastructure/redis"
	httpserver "github.com/your-org/loyalty-portal/internal/interfaces/http"
	"github.com/your-org/loyalty-portal/internal/interfaces/http/routes"
	"github.com/your-org/loyalty-portal/internal/loyalty"
	"github.com/your-org/loyalty-portal/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg)
	appLogger.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to Redis
	redisClient, err := redisinfra.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Loyalty backend client
	client, err := loyalty.NewClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to create loyalty client: %v", err)
	}

	// Shared infrastructure
	portalCache := cache.New(redisClient, appLogger)
	carts := cart.NewStore()
	feed := ui.NewFeed(cfg.Auth.NotificationLimit)
	sessions := session.NewManager(redisClient, cfg, appLogger)

	// Domain services
	catalogService := catalog.NewService(client.Products, portalCache, cfg)
	checkoutService := checkout.NewService(client.Redemption, carts, portalCache, feed, cfg, appLogger)
	orderService := order.NewService(orderAPI{client}, portalCache, feed, cfg, appLogger)

	deps := &routes.Dependencies{
		Config:   cfg,
		Logger:   appLogger,
		Cache:    portalCache,
		Client:   client,
		Sessions: sessions,
		Carts:    carts,
		Catalog:  catalogService,
		Checkout: checkoutService,
		Orders:   orderService,
		Feed:     feed,
	}

	server := httpserver.NewServer(cfg, redisClient, deps)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLogger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	appLogger.Info("Server shutdown completed")
}

// orderAPI joins the order read endpoints with the redemption lifecycle
// endpoints behind the single interface the order console consumes.
type orderAPI struct {
	client *loyalty.Client
}

func (a orderAPI) Get(ctx context.Context, id string) (*loyalty.Order, error) {
	return a.client.Orders.Get(ctx, id)
}

func (a orderAPI) ByCompany(ctx context.Context, companyID string, opts *loyalty.OrderListOptions) (*loyalty.Page[loyalty.Order], error) {
	return a.client.Orders.ByCompany(ctx, companyID, opts)
}

func (a orderAPI) Statistics(ctx context.Context) (*loyalty.OrderStatistics, error) {
	return a.client.Orders.Statistics(ctx)
}

func (a orderAPI) ProcessOrder(ctx context.Context, id string) (*loyalty.Order, error) {
	return a.client.Redemption.ProcessOrder(ctx, id)
}

func (a orderAPI) CancelOrder(ctx context.Context, id, reason string) (*loyalty.Order, error) {
	return a.client.Redemption.CancelOrder(ctx, id, reason)
}
