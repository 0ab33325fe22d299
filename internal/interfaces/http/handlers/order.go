// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/loyalty-portal/internal/domain/order"
	"github.com/your-org/loyalty-portal/internal/interfaces/http/middleware"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// OrderHandler handles the order management console endpoints
type OrderHandler struct {
	orders  *order.Service
	respond *Responder
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, respond *Responder) *OrderHandler {
	return &OrderHandler{
		orders:  orderService,
		respond: respond,
	}
}

// GetOrders handles GET /orders. Orders are always scoped to the
// session's company.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	opts := &loyalty.OrderListOptions{
		Status: loyalty.OrderStatus(c.Query("status")),
		Page:   queryInt(c, "page"),
		Size:   queryInt(c, "size"),
	}

	page, err := h.orders.List(c.Request.Context(), sess.Company.ID, opts)
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    page,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	result, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    result,
	})
}

// GetStatistics handles GET /orders/statistics
func (h *OrderHandler) GetStatistics(c *gin.Context) {
	stats, err := h.orders.Statistics(c.Request.Context())
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order statistics retrieved successfully",
		"data":    stats,
	})
}

// ProcessOrder handles POST /orders/:id/process
func (h *OrderHandler) ProcessOrder(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	updated, err := h.orders.Process(c.Request.Context(), sess.ID, sess.Company.ID, c.Param("id"))
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order processed successfully",
		"data":    updated,
	})
}

// CancelOrder handles POST /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	updated, err := h.orders.Cancel(c.Request.Context(), sess.ID, sess.Company.ID, c.Param("id"), c.Query("reason"))
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"data":    updated,
	})
}
