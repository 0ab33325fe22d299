// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/loyalty-portal/internal/domain/catalog"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	catalog *catalog.Service
	respond *Responder
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *catalog.Service, respond *Responder) *ProductHandler {
	return &ProductHandler{
		catalog: catalogService,
		respond: respond,
	}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	opts := &loyalty.ProductListOptions{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		Brand:       c.Query("brand"),
		ProductType: loyalty.ProductType(c.Query("productType")),
		MinPoints:   queryInt(c, "minPoints"),
		MaxPoints:   queryInt(c, "maxPoints"),
		Page:        queryInt(c, "page"),
		Size:        queryInt(c, "size"),
	}

	page, err := h.catalog.List(c.Request.Context(), opts)
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    page,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// SearchProducts handles GET /products/search
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	opts := &loyalty.ProductListOptions{
		Page: queryInt(c, "page"),
		Size: queryInt(c, "size"),
	}

	page, err := h.catalog.Search(c.Request.Context(), c.Query("q"), opts)
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    page,
	})
}

// GetProductsByPointsRange handles GET /products/points-range
func (h *ProductHandler) GetProductsByPointsRange(c *gin.Context) {
	page, err := h.catalog.ByPointsRange(c.Request.Context(), queryInt(c, "minPoints"), queryInt(c, "maxPoints"))
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    page,
	})
}

// GetCategories handles GET /products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}

// GetBrands handles GET /products/brands
func (h *ProductHandler) GetBrands(c *gin.Context) {
	brands, err := h.catalog.Brands(c.Request.Context())
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brands retrieved successfully",
		"data":    brands,
	})
}

func queryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}
