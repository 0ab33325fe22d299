// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"

	"github.com/your-org/loyalty-portal/internal/cache"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// ProductAPI is the slice of the loyalty client the catalog needs
type ProductAPI interface {
	List(ctx context.Context, opts *loyalty.ProductListOptions) (*loyalty.Page[loyalty.Product], error)
	Get(ctx context.Context, id string) (*loyalty.Product, error)
	Search(ctx context.Context, query string, opts *loyalty.ProductListOptions) (*loyalty.Page[loyalty.Product], error)
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
	ByPointsRange(ctx context.Context, minPoints, maxPoints int) (*loyalty.Page[loyalty.Product], error)
}

// Service serves catalog reads through the cache. Catalog data changes
// rarely, so it carries the longest staleness windows.
type Service struct {
	api   ProductAPI
	cache *cache.Cache
	ttl   config.CacheConfig
}

// NewService creates a catalog service
func NewService(api ProductAPI, c *cache.Cache, cfg *config.Config) *Service {
	return &Service{
		api:   api,
		cache: c,
		ttl:   cfg.Cache,
	}
}

// List retrieves a filtered catalog page. The backend does the paging;
// the filter predicate is applied locally on top so the catalog behaves
// identically whether or not the backend honors every filter parameter.
func (s *Service) List(ctx context.Context, opts *loyalty.ProductListOptions) (*loyalty.Page[loyalty.Product], error) {
	key := cache.ProductListKey(opts.Values().Encode())
	page, err := cache.Fetch(ctx, s.cache, key, s.ttl.ProductTTL, func(ctx context.Context) (*loyalty.Page[loyalty.Product], error) {
		return s.api.List(ctx, opts)
	})
	if err != nil {
		return nil, err
	}

	filter := filterFromOptions(opts)
	if !filter.IsZero() {
		page.Content = filter.Apply(page.Content)
	}
	return page, nil
}

// Get retrieves a single product
func (s *Service) Get(ctx context.Context, id string) (*loyalty.Product, error) {
	if id == "" {
		return nil, loyalty.NewValidationError("product id is required")
	}
	return cache.Fetch(ctx, s.cache, cache.ProductKey(id), s.ttl.ProductTTL, func(ctx context.Context) (*loyalty.Product, error) {
		return s.api.Get(ctx, id)
	})
}

// Search runs the backend's free-text product search. Results share the
// product staleness window; the cache key carries the query.
func (s *Service) Search(ctx context.Context, query string, opts *loyalty.ProductListOptions) (*loyalty.Page[loyalty.Product], error) {
	if query == "" {
		return nil, loyalty.NewValidationError("search query is required")
	}
	q := opts.Values()
	q.Set("q", query)
	key := cache.ProductListKey("search:" + q.Encode())
	return cache.Fetch(ctx, s.cache, key, s.ttl.ProductTTL, func(ctx context.Context) (*loyalty.Page[loyalty.Product], error) {
		return s.api.Search(ctx, query, opts)
	})
}

// ByPointsRange lists products affordable inside a points window
func (s *Service) ByPointsRange(ctx context.Context, minPoints, maxPoints int) (*loyalty.Page[loyalty.Product], error) {
	key := cache.ProductListKey(fmt.Sprintf("range:%d-%d", minPoints, maxPoints))
	return cache.Fetch(ctx, s.cache, key, s.ttl.ProductTTL, func(ctx context.Context) (*loyalty.Page[loyalty.Product], error) {
		return s.api.ByPointsRange(ctx, minPoints, maxPoints)
	})
}

// Categories retrieves the distinct category list
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return cache.Fetch(ctx, s.cache, cache.CategoriesKey(), s.ttl.MetadataTTL, func(ctx context.Context) ([]string, error) {
		return s.api.Categories(ctx)
	})
}

// Brands retrieves the distinct brand list
func (s *Service) Brands(ctx context.Context) ([]string, error) {
	return cache.Fetch(ctx, s.cache, cache.BrandsKey(), s.ttl.MetadataTTL, func(ctx context.Context) ([]string, error) {
		return s.api.Brands(ctx)
	})
}

func filterFromOptions(opts *loyalty.ProductListOptions) Filter {
	if opts == nil {
		return Filter{}
	}
	return Filter{
		Search:      opts.Search,
		Category:    opts.Category,
		Brand:       opts.Brand,
		ProductType: opts.ProductType,
		MinPoints:   opts.MinPoints,
		MaxPoints:   opts.MaxPoints,
	}
}
