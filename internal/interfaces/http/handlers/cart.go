// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/loyalty-portal/internal/domain/cart"
	"github.com/your-org/loyalty-portal/internal/domain/catalog"
	"github.com/your-org/loyalty-portal/internal/domain/ui"
	"github.com/your-org/loyalty-portal/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints. Carts are keyed by session and
// live only in memory; a restart empties them.
type CartHandler struct {
	carts   *cart.Store
	catalog *catalog.Service
	feed    *ui.Feed
	respond *Responder
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Store, catalogService *catalog.Service, feed *ui.Feed, respond *Responder) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalogService,
		feed:    feed,
		respond: respond,
	}
}

// AddToCartRequest identifies a catalog product and a quantity
type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest sets an absolute quantity for a cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.carts.Get(sess.ID).Snapshot(),
	})
}

// AddToCart handles POST /cart/items. The product is looked up in the
// catalog so the line carries a copy of its current fields.
func (h *CartHandler) AddToCart(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	snapshot := h.carts.Get(sess.ID).AddItem(*product, req.Quantity)
	h.feed.Success(sess.ID, "Added to Cart", product.Name+" added to cart")

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    snapshot,
	})
}

// UpdateCartItem handles PUT /cart/items/:id. A quantity of zero or
// less removes the line.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	snapshot := h.carts.Get(sess.ID).UpdateQuantity(c.Param("id"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    snapshot,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id. Removing an absent
// line is a no-op.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	snapshot := h.carts.Get(sess.ID).RemoveItem(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    snapshot,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	snapshot := h.carts.Get(sess.ID).Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"data":    snapshot,
	})
}
