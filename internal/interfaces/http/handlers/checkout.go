// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/loyalty-portal/internal/domain/checkout"
	"github.com/your-org/loyalty-portal/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the redemption checkout endpoints
type CheckoutHandler struct {
	checkout *checkout.Service
	respond  *Responder
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, respond *Responder) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkoutService,
		respond:  respond,
	}
}

// GetBalance handles GET /checkout/balance. The frontend polls this
// while the cart is open.
func (h *CheckoutHandler) GetBalance(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	check, err := h.checkout.CheckBalance(c.Request.Context(), sess)
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Balance retrieved successfully",
		"data":    check,
	})
}

// Confirm handles POST /checkout
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	// An empty body is a valid confirmation for virtual-only carts
	var req checkout.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := h.checkout.Confirm(c.Request.Context(), sess, req)
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"data":    order,
	})
}
