// internal/loyalty/redemption.go
package loyalty

import (
	"context"
	"net/url"
)

// RedemptionService maps to the backend /redemption endpoints
type RedemptionService struct {
	client *Client
}

// CheckBalance retrieves the loyalty-point balance for a company
func (s *RedemptionService) CheckBalance(ctx context.Context, companyID string) (*Balance, error) {
	if companyID == "" {
		return nil, NewValidationError("company id is required")
	}
	var balance Balance
	if err := s.client.get(ctx, "/redemption/balance/"+url.PathEscape(companyID), nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// CreateOrder submits a new redemption order
func (s *RedemptionService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, NewValidationError("order items are required")
	}
	if req.CompanyID == "" || req.AccountManagerID == "" {
		return nil, NewValidationError("company and account manager are required")
	}
	var order Order
	if err := s.client.post(ctx, "/redemption/orders", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ProcessOrder asks the backend to process a pending order and deduct points
func (s *RedemptionService) ProcessOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, NewValidationError("order id is required")
	}
	var order Order
	if err := s.client.post(ctx, "/redemption/orders/"+url.PathEscape(orderID)+"/process", nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels an order, refunding any deducted points
func (s *RedemptionService) CancelOrder(ctx context.Context, orderID, reason string) (*Order, error) {
	if orderID == "" {
		return nil, NewValidationError("order id is required")
	}
	q := url.Values{}
	if reason != "" {
		q.Set("reason", reason)
	}
	var order Order
	if err := s.client.post(ctx, "/redemption/orders/"+url.PathEscape(orderID)+"/cancel", q, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
