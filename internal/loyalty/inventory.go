// internal/loyalty/inventory.go
package loyalty

import (
	"context"
	"net/url"
	"strconv"
)

// InventoryService maps to the backend /inventory endpoints
type InventoryService struct {
	client *Client
}

// CheckAvailability asks whether the requested quantity of a product is in stock.
// The cart never calls this synchronously; availability is advisory.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID string, quantity int) (*Availability, error) {
	if productID == "" {
		return nil, NewValidationError("product id is required")
	}
	if quantity < 1 {
		return nil, NewValidationError("quantity must be at least 1")
	}
	q := url.Values{}
	q.Set("quantity", strconv.Itoa(quantity))
	var availability Availability
	if err := s.client.get(ctx, "/inventory/product/"+url.PathEscape(productID)+"/availability", q, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}
