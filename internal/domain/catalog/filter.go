// internal/domain/catalog/filter.go
package catalog

import (
	"strings"

	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// Filter narrows a product listing. All criteria are conjunctive; zero
// values mean "no constraint".
type Filter struct {
	Search      string
	Category    string
	Brand       string
	ProductType loyalty.ProductType
	MinPoints   int
	MaxPoints   int
}

// Matches reports whether a product passes every set criterion
func (f Filter) Matches(p loyalty.Product) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	if f.ProductType != "" && p.ProductType != f.ProductType {
		return false
	}
	if f.MinPoints > 0 && p.PointsCost < f.MinPoints {
		return false
	}
	if f.MaxPoints > 0 && p.PointsCost > f.MaxPoints {
		return false
	}
	return true
}

// Apply filters a product slice, preserving order
func (f Filter) Apply(products []loyalty.Product) []loyalty.Product {
	filtered := make([]loyalty.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// IsZero reports whether no criterion is set
func (f Filter) IsZero() bool {
	return f == Filter{}
}
