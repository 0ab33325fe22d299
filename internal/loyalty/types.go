// internal/loyalty/types.go
package loyalty

import "time"

// ProductType distinguishes goods that ship from goods delivered electronically
type ProductType string

const (
	ProductTypePhysical ProductType = "PHYSICAL"
	ProductTypeVirtual  ProductType = "VIRTUAL"
)

// OrderStatus is the lifecycle state of a redemption order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

// Product is a catalog entry, read-only from the portal's perspective
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	PointsCost  int         `json:"pointsCost"`
	ProductType ProductType `json:"productType"`
	Category    string      `json:"category,omitempty"`
	Brand       string      `json:"brand,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	IsActive    bool        `json:"isActive"`
}

// Company is the organization redeeming points
type Company struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	LoyaltyAccountID string `json:"loyaltyAccountId"`
	Tier             string `json:"tier,omitempty"`
}

// AccountManager is the operator acting on behalf of a company
type AccountManager struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
}

// Balance is a company's loyalty-point balance snapshot
type Balance struct {
	AccountID        string    `json:"accountId"`
	Balance          int       `json:"balance"`
	AvailableBalance int       `json:"availableBalance"`
	PendingBalance   int       `json:"pendingBalance"`
	TierLevel        string    `json:"tierLevel,omitempty"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// OrderItem is a single product line on a redemption order
type OrderItem struct {
	ID             string      `json:"id"`
	Product        *Product    `json:"product,omitempty"`
	Quantity       int         `json:"quantity"`
	PointsPerItem  int         `json:"pointsPerItem"`
	TotalPoints    int         `json:"totalPoints"`
	Status         OrderStatus `json:"status"`
	TrackingNumber string      `json:"trackingNumber,omitempty"`
}

// Order is a redemption order; the backend is the source of truth
type Order struct {
	ID                  string          `json:"id"`
	OrderNumber         string          `json:"orderNumber"`
	Status              OrderStatus     `json:"status"`
	Items               []OrderItem     `json:"items,omitempty"`
	TotalPoints         int             `json:"totalPoints"`
	TotalItems          int             `json:"totalItems"`
	Company             *Company        `json:"company,omitempty"`
	AccountManager      *AccountManager `json:"accountManager,omitempty"`
	ShippingAddress     string          `json:"shippingAddress,omitempty"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt,omitempty"`
}

// OrderStatistics is the aggregate view for the order-management console
type OrderStatistics struct {
	TotalOrders      int64 `json:"totalOrders"`
	PendingOrders    int64 `json:"pendingOrders"`
	CompletedOrders  int64 `json:"completedOrders"`
	CancelledOrders  int64 `json:"cancelledOrders"`
	TotalPointsSpent int64 `json:"totalPointsSpent"`
}

// Availability is the inventory answer for a requested quantity
type Availability struct {
	ProductID         string `json:"productId"`
	RequestedQuantity int    `json:"requestedQuantity"`
	AvailableQuantity int    `json:"availableQuantity"`
	Available         bool   `json:"available"`
}

// Page is one page of a paginated listing
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// CreateOrderRequest is the order submission payload
type CreateOrderRequest struct {
	CompanyID           string             `json:"companyId"`
	AccountManagerID    string             `json:"accountManagerId"`
	Items               []OrderItemRequest `json:"items"`
	ShippingAddress     string             `json:"shippingAddress,omitempty"`
	SpecialInstructions string             `json:"specialInstructions,omitempty"`
}

// OrderItemRequest is one requested product line
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
