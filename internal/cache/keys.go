// internal/cache/keys.go
package cache

import "fmt"

// Collection names for version-embedded listing keys
const (
	OrdersCollection = "orders"
)

// ProductKey is the cache key for a single product
func ProductKey(id string) string {
	return "product:" + id
}

// ProductListKey is the cache key for one filtered catalog page
func ProductListKey(query string) string {
	if query == "" {
		query = "all"
	}
	return "products:" + query
}

// CategoriesKey caches the distinct category list
func CategoriesKey() string {
	return "categories"
}

// BrandsKey caches the distinct brand list
func BrandsKey() string {
	return "brands"
}

// CompaniesKey caches the company directory
func CompaniesKey() string {
	return "companies"
}

// CompanyKey is the cache key for a single company
func CompanyKey(id string) string {
	return "company:" + id
}

// BalanceKey is the cache key for a company's loyalty balance
func BalanceKey(companyID string) string {
	return "balance:" + companyID
}

// OrderKey is the cache key for a single order
func OrderKey(id string) string {
	return "order:" + id
}

// OrderListKey is the cache key for one page of a company's order history.
// The collection version is embedded so one bump retires every page.
func OrderListKey(companyID string, version int64, query string) string {
	if query == "" {
		query = "all"
	}
	return fmt.Sprintf("orders:%s:v%d:%s", companyID, version, query)
}

// OrderListCollection names the listing family for a company's orders
func OrderListCollection(companyID string) string {
	return fmt.Sprintf("%s:%s", OrdersCollection, companyID)
}

// OrderStatsKey caches the aggregate order statistics
func OrderStatsKey() string {
	return "order-stats"
}
