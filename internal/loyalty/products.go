// internal/loyalty/products.go
package loyalty

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ProductsService maps to the backend /products endpoints
type ProductsService struct {
	client *Client
}

// ProductListOptions are the catalog filter and pagination parameters
type ProductListOptions struct {
	Search      string
	Category    string
	Brand       string
	ProductType ProductType
	MinPoints   int
	MaxPoints   int
	Page        int
	Size        int
}

// Values encodes the options as query parameters. Zero values are omitted.
func (o *ProductListOptions) Values() url.Values {
	q := url.Values{}
	if o == nil {
		return q
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.Brand != "" {
		q.Set("brand", o.Brand)
	}
	if o.ProductType != "" {
		q.Set("productType", string(o.ProductType))
	}
	if o.MinPoints > 0 {
		q.Set("minPoints", strconv.Itoa(o.MinPoints))
	}
	if o.MaxPoints > 0 {
		q.Set("maxPoints", strconv.Itoa(o.MaxPoints))
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Size > 0 {
		q.Set("size", strconv.Itoa(o.Size))
	}
	return q
}

// List retrieves a filtered, paginated product listing
func (s *ProductsService) List(ctx context.Context, opts *ProductListOptions) (*Page[Product], error) {
	var page Page[Product]
	if err := s.client.get(ctx, "/products", opts.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a single product by id
func (s *ProductsService) Get(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, NewValidationError("product id is required")
	}
	var product Product
	if err := s.client.get(ctx, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Search retrieves products matching a free-text query
func (s *ProductsService) Search(ctx context.Context, query string, opts *ProductListOptions) (*Page[Product], error) {
	if query == "" {
		return nil, NewValidationError("search query is required")
	}
	q := opts.Values()
	q.Set("q", query)
	var page Page[Product]
	if err := s.client.get(ctx, "/products/search", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Categories retrieves the distinct catalog categories
func (s *ProductsService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.client.get(ctx, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Brands retrieves the distinct catalog brands
func (s *ProductsService) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	if err := s.client.get(ctx, "/products/brands", nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// ByPointsRange retrieves products whose cost falls inside the given range
func (s *ProductsService) ByPointsRange(ctx context.Context, minPoints, maxPoints int) (*Page[Product], error) {
	if minPoints < 0 || maxPoints < minPoints {
		return nil, NewValidationError(fmt.Sprintf("invalid points range %d-%d", minPoints, maxPoints))
	}
	q := url.Values{}
	q.Set("minPoints", strconv.Itoa(minPoints))
	q.Set("maxPoints", strconv.Itoa(maxPoints))
	var page Page[Product]
	if err := s.client.get(ctx, "/products/points-range", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
