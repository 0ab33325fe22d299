// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/loyalty-portal/internal/cache"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// API is the slice of the loyalty client the order console needs
type API interface {
	Get(ctx context.Context, id string) (*loyalty.Order, error)
	ByCompany(ctx context.Context, companyID string, opts *loyalty.OrderListOptions) (*loyalty.Page[loyalty.Order], error)
	Statistics(ctx context.Context) (*loyalty.OrderStatistics, error)
	ProcessOrder(ctx context.Context, id string) (*loyalty.Order, error)
	CancelOrder(ctx context.Context, id, reason string) (*loyalty.Order, error)
}

// Notifier receives the user-visible outcome of order actions
type Notifier interface {
	Success(sessionID, title, message string)
	Error(sessionID, title, message string)
}

// Service is the order console: cached listings and lookups plus the two
// lifecycle actions, process and cancel. Which action an order admits is
// decided by its current status, never by the caller.
type Service struct {
	api      API
	cache    *cache.Cache
	notifier Notifier
	ttl      config.CacheConfig
	logger   *logrus.Logger
}

// NewService creates an order service
func NewService(api API, c *cache.Cache, notifier Notifier, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		api:      api,
		cache:    c,
		notifier: notifier,
		ttl:      cfg.Cache,
		logger:   logger,
	}
}

// List returns a page of the company's orders, optionally narrowed to a
// status. Listing keys embed the company's collection version, so a
// mutation retires every cached page at once.
func (s *Service) List(ctx context.Context, companyID string, opts *loyalty.OrderListOptions) (*loyalty.Page[loyalty.Order], error) {
	if opts == nil {
		opts = &loyalty.OrderListOptions{}
	}
	version := s.cache.CollectionVersion(ctx, cache.OrderListCollection(companyID))
	key := cache.OrderListKey(companyID, version, opts.Values().Encode())
	return cache.Fetch(ctx, s.cache, key, s.ttl.OrderTTL, func(ctx context.Context) (*loyalty.Page[loyalty.Order], error) {
		return s.api.ByCompany(ctx, companyID, opts)
	})
}

// Get returns a single order by id
func (s *Service) Get(ctx context.Context, id string) (*loyalty.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, loyalty.NewValidationError("order id is required")
	}
	return cache.Fetch(ctx, s.cache, cache.OrderKey(id), s.ttl.OrderTTL, func(ctx context.Context) (*loyalty.Order, error) {
		return s.api.Get(ctx, id)
	})
}

// Statistics returns the aggregate order counters
func (s *Service) Statistics(ctx context.Context) (*loyalty.OrderStatistics, error) {
	return cache.Fetch(ctx, s.cache, cache.OrderStatsKey(), s.ttl.StatsTTL, func(ctx context.Context) (*loyalty.OrderStatistics, error) {
		return s.api.Statistics(ctx)
	})
}

// CanProcess reports whether an order currently admits processing
func CanProcess(status loyalty.OrderStatus) bool {
	return status == loyalty.OrderStatusPending
}

// CanCancel reports whether an order currently admits cancellation
func CanCancel(status loyalty.OrderStatus) bool {
	return status == loyalty.OrderStatusPending || status == loyalty.OrderStatusProcessing
}

// Process moves a pending order into processing. The status gate is
// checked here against the freshest copy we can get, and again by the
// backend, which stays authoritative.
func (s *Service) Process(ctx context.Context, sessionID, companyID, id string) (*loyalty.Order, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanProcess(current.Status) {
		msg := fmt.Sprintf("Order %s cannot be processed in status %s", current.OrderNumber, current.Status)
		s.notifier.Error(sessionID, "Order Update Failed", msg)
		return nil, loyalty.NewValidationError(msg)
	}

	updated, err := s.api.ProcessOrder(ctx, id)
	if err != nil {
		s.notifyFailure(sessionID, err)
		return nil, err
	}

	s.afterMutation(ctx, companyID, id)
	s.logger.WithFields(logrus.Fields{
		"order_number": updated.OrderNumber,
		"status":       updated.Status,
	}).Info("Order processed")
	s.notifier.Success(sessionID, "Order Updated",
		fmt.Sprintf("Order %s is now being processed", updated.OrderNumber))
	return updated, nil
}

// Cancel cancels a pending or processing order. Completed orders are
// rejected locally; the points were already spent.
func (s *Service) Cancel(ctx context.Context, sessionID, companyID, id, reason string) (*loyalty.Order, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanCancel(current.Status) {
		msg := fmt.Sprintf("Order %s cannot be cancelled in status %s", current.OrderNumber, current.Status)
		s.notifier.Error(sessionID, "Order Update Failed", msg)
		return nil, loyalty.NewValidationError(msg)
	}

	updated, err := s.api.CancelOrder(ctx, id, reason)
	if err != nil {
		s.notifyFailure(sessionID, err)
		return nil, err
	}

	s.afterMutation(ctx, companyID, id)
	s.logger.WithFields(logrus.Fields{
		"order_number": updated.OrderNumber,
		"reason":       reason,
	}).Info("Order cancelled")
	s.notifier.Success(sessionID, "Order Cancelled",
		fmt.Sprintf("Order %s has been cancelled", updated.OrderNumber))
	return updated, nil
}

// afterMutation retires exactly the cache entries a lifecycle change
// can have invalidated: the order itself, every listing page, the stats
// counters, and the balance (cancellation refunds points).
func (s *Service) afterMutation(ctx context.Context, companyID, id string) {
	s.cache.BumpCollection(ctx, cache.OrderListCollection(companyID))
	s.cache.Invalidate(ctx,
		cache.OrderKey(id),
		cache.OrderStatsKey(),
		cache.BalanceKey(companyID),
	)
}

func (s *Service) notifyFailure(sessionID string, err error) {
	if apiErr, ok := loyalty.AsAPIError(err); ok {
		s.notifier.Error(sessionID, "Order Update Failed", apiErr.Message)
	}
}
