// internal/loyalty/orders.go
package loyalty

import (
	"context"
	"net/url"
	"strconv"
)

// OrdersService maps to the backend /orders endpoints
type OrdersService struct {
	client *Client
}

// OrderListOptions are the order-management console filters
type OrderListOptions struct {
	Status OrderStatus
	Page   int
	Size   int
}

// Values encodes the options as query parameters
func (o *OrderListOptions) Values() url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}
	if o.Status != "" {
		q.Set("status", string(o.Status))
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Size > 0 {
		q.Set("size", strconv.Itoa(o.Size))
	}
	return q
}

// Get retrieves a single order by id
func (s *OrdersService) Get(ctx context.Context, id string) (*Order, error) {
	if id == "" {
		return nil, NewValidationError("order id is required")
	}
	var order Order
	if err := s.client.get(ctx, "/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ByNumber retrieves a single order by its order number
func (s *OrdersService) ByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	if orderNumber == "" {
		return nil, NewValidationError("order number is required")
	}
	var order Order
	if err := s.client.get(ctx, "/orders/number/"+url.PathEscape(orderNumber), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ByCompany retrieves the paginated order history for a company
func (s *OrdersService) ByCompany(ctx context.Context, companyID string, opts *OrderListOptions) (*Page[Order], error) {
	if companyID == "" {
		return nil, NewValidationError("company id is required")
	}
	var page Page[Order]
	if err := s.client.get(ctx, "/orders/company/"+url.PathEscape(companyID), opts.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Statistics retrieves aggregate order metrics
func (s *OrdersService) Statistics(ctx context.Context) (*OrderStatistics, error) {
	var stats OrderStatistics
	if err := s.client.get(ctx, "/orders/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
