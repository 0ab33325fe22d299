// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/loyalty-portal/internal/cache"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/domain/cart"
	"github.com/your-org/loyalty-portal/internal/domain/session"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// RedemptionAPI is the slice of the loyalty client checkout needs
type RedemptionAPI interface {
	CheckBalance(ctx context.Context, companyID string) (*loyalty.Balance, error)
	CreateOrder(ctx context.Context, req *loyalty.CreateOrderRequest) (*loyalty.Order, error)
}

// Notifier receives the user-visible outcome of every checkout attempt
type Notifier interface {
	Success(sessionID, title, message string)
	Error(sessionID, title, message string)
}

// Service drives the order submission flow: populated cart, balance
// check, confirmation, remote order creation, then cart clear. Failures
// leave the cart untouched and are never retried automatically.
type Service struct {
	redemption RedemptionAPI
	carts      *cart.Store
	cache      *cache.Cache
	notifier   Notifier
	ttl        config.CacheConfig
	logger     *logrus.Logger
}

// NewService creates a checkout service
func NewService(redemption RedemptionAPI, carts *cart.Store, c *cache.Cache, notifier Notifier, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		redemption: redemption,
		carts:      carts,
		cache:      c,
		notifier:   notifier,
		ttl:        cfg.Cache,
		logger:     logger,
	}
}

// BalanceCheck is the sufficiency verdict shown before confirmation.
// Shortfall is exact, never a generic "insufficient" flag.
type BalanceCheck struct {
	Balance          int  `json:"balance"`
	AvailableBalance int  `json:"availableBalance"`
	OrderTotal       int  `json:"orderTotal"`
	Sufficient       bool `json:"sufficient"`
	Shortfall        int  `json:"shortfall"`
}

// ConfirmRequest carries the transient confirmation-form state. It is
// discarded when the dialog is abandoned; the cart is not.
type ConfirmRequest struct {
	ShippingAddress     string `json:"shippingAddress"`
	SpecialInstructions string `json:"specialInstructions"`
}

// CheckBalance compares the company's available balance against the
// session cart total. The balance read is cached on the short balance
// window, since it is polled.
func (s *Service) CheckBalance(ctx context.Context, sess *session.Session) (*BalanceCheck, error) {
	if sess == nil || !sess.IsAuthenticated {
		return nil, loyalty.NewValidationError("Please log in to proceed with checkout")
	}

	snapshot := s.carts.Get(sess.ID).Snapshot()
	return s.checkAgainst(ctx, sess.Company.ID, snapshot.Totals.TotalPoints)
}

// checkAgainst compares the company balance to a fixed order total, so a
// caller holding a snapshot judges sufficiency against exactly that
// snapshot rather than a re-read of the cart.
func (s *Service) checkAgainst(ctx context.Context, companyID string, orderTotal int) (*BalanceCheck, error) {
	balance, err := s.fetchBalance(ctx, companyID)
	if err != nil {
		return nil, err
	}

	available := balance.AvailableBalance
	if available == 0 {
		available = balance.Balance
	}

	check := &BalanceCheck{
		Balance:          balance.Balance,
		AvailableBalance: available,
		OrderTotal:       orderTotal,
		Sufficient:       available >= orderTotal,
	}
	if !check.Sufficient {
		check.Shortfall = orderTotal - available
	}
	return check, nil
}

// Confirm validates the cart and form, re-verifies the balance, and
// submits the order. The cart is cleared only after the backend accepts
// the order; any earlier failure leaves it exactly as it was.
func (s *Service) Confirm(ctx context.Context, sess *session.Session, req ConfirmRequest) (*loyalty.Order, error) {
	if sess == nil || !sess.IsAuthenticated {
		return nil, loyalty.NewValidationError("Please log in to proceed with checkout")
	}

	sessionCart := s.carts.Get(sess.ID)
	snapshot := sessionCart.Snapshot()

	if snapshot.IsEmpty() {
		return nil, loyalty.NewValidationError("Your cart is empty")
	}

	if snapshot.HasPhysicalItems() && strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, loyalty.NewValidationError("Shipping address is required for physical products")
	}

	check, err := s.checkAgainst(ctx, sess.Company.ID, snapshot.Totals.TotalPoints)
	if err != nil {
		return nil, err
	}
	if !check.Sufficient {
		msg := fmt.Sprintf("Insufficient balance. You need %d more points.", check.Shortfall)
		s.notifier.Error(sess.ID, "Order Creation Failed", msg)
		return nil, loyalty.NewValidationError(msg)
	}

	orderReq := &loyalty.CreateOrderRequest{
		CompanyID:           sess.Company.ID,
		AccountManagerID:    sess.User.ID,
		Items:               make([]loyalty.OrderItemRequest, 0, len(snapshot.Lines)),
		SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
	}
	if snapshot.HasPhysicalItems() {
		orderReq.ShippingAddress = strings.TrimSpace(req.ShippingAddress)
	}
	for _, line := range snapshot.Lines {
		orderReq.Items = append(orderReq.Items, loyalty.OrderItemRequest{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order, err := s.redemption.CreateOrder(ctx, orderReq)
	if err != nil {
		if apiErr, ok := loyalty.AsAPIError(err); ok {
			s.notifier.Error(sess.ID, "Order Creation Failed", apiErr.Message)
		}
		return nil, err
	}

	// The order exists remotely; clear the cart and retire exactly the
	// cache entries the mutation affects.
	sessionCart.Clear()
	s.cache.BumpCollection(ctx, cache.OrderListCollection(sess.Company.ID))
	s.cache.Invalidate(ctx, cache.BalanceKey(sess.Company.ID), cache.OrderStatsKey())

	s.logger.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"company":      sess.Company.ID,
		"total_points": snapshot.Totals.TotalPoints,
	}).Info("Redemption order created")

	s.notifier.Success(sess.ID, "Order Created",
		fmt.Sprintf("Order %s created successfully", order.OrderNumber))

	return order, nil
}

func (s *Service) fetchBalance(ctx context.Context, companyID string) (*loyalty.Balance, error) {
	return cache.Fetch(ctx, s.cache, cache.BalanceKey(companyID), s.ttl.BalanceTTL, func(ctx context.Context) (*loyalty.Balance, error) {
		return s.redemption.CheckBalance(ctx, companyID)
	})
}
