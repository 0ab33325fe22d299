// internal/interfaces/http/handlers/company.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/loyalty-portal/internal/cache"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// CompanyHandler handles company lookup endpoints, used by the login
// screen's company picker
type CompanyHandler struct {
	companies *loyalty.CompaniesService
	cache     *cache.Cache
	respond   *Responder
	ttl       config.CacheConfig
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companies *loyalty.CompaniesService, c *cache.Cache, respond *Responder, cfg *config.Config) *CompanyHandler {
	return &CompanyHandler{
		companies: companies,
		cache:     c,
		respond:   respond,
		ttl:       cfg.Cache,
	}
}

// GetCompanies handles GET /companies
func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	companies, err := cache.Fetch(c.Request.Context(), h.cache, cache.CompaniesKey(), h.ttl.CompanyTTL, func(ctx context.Context) ([]loyalty.Company, error) {
		return h.companies.List(ctx)
	})
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Companies retrieved successfully",
		"data":    companies,
	})
}

// GetCompany handles GET /companies/:id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id := c.Param("id")
	company, err := cache.Fetch(c.Request.Context(), h.cache, cache.CompanyKey(id), h.ttl.CompanyTTL, func(ctx context.Context) (*loyalty.Company, error) {
		return h.companies.Get(ctx, id)
	})
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Company retrieved successfully",
		"data":    company,
	})
}
