// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// InventoryHandler handles availability checks. These are never cached;
// stock is exactly the data staleness would falsify.
type InventoryHandler struct {
	inventory *loyalty.InventoryService
	respond   *Responder
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventory *loyalty.InventoryService, respond *Responder) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		respond:   respond,
	}
}

// CheckAvailability handles GET /inventory/product/:id/availability
func (h *InventoryHandler) CheckAvailability(c *gin.Context) {
	quantity := queryInt(c, "quantity")
	if quantity < 1 {
		quantity = 1
	}

	availability, err := h.inventory.CheckAvailability(c.Request.Context(), c.Param("id"), quantity)
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Availability retrieved successfully",
		"data":    availability,
	})
}
