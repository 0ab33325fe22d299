// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/loyalty-portal/internal/config"
	"github.com/your-org/loyalty-portal/internal/domain/session"
	"github.com/your-org/loyalty-portal/internal/interfaces/http/middleware"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// AuthHandler handles session endpoints
type AuthHandler struct {
	sessions  *session.Manager
	companies *loyalty.CompaniesService
	respond   *Responder
	config    *config.Config
	logger    *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Manager, companies *loyalty.CompaniesService, respond *Responder, cfg *config.Config, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		companies: companies,
		respond:   respond,
		config:    cfg,
		logger:    logger,
	}
}

// LoginRequest identifies the account manager and the company they act for
type LoginRequest struct {
	ManagerID        string `json:"managerId" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	CompanyID        string `json:"companyId"`
	LoyaltyAccountID string `json:"loyaltyAccountId"`
}

// Login handles POST /auth/login. The company is resolved against the
// loyalty backend so a session can never reference a company that does
// not exist there.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if req.CompanyID == "" && req.LoyaltyAccountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "companyId or loyaltyAccountId is required",
		})
		return
	}

	var (
		company *loyalty.Company
		err     error
	)
	if req.CompanyID != "" {
		company, err = h.companies.Get(c.Request.Context(), req.CompanyID)
	} else {
		company, err = h.companies.ByLoyaltyAccount(c.Request.Context(), req.LoyaltyAccountID)
	}
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	user := loyalty.AccountManager{
		ID:        req.ManagerID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      "ACCOUNT_MANAGER",
	}

	sess, token, err := h.sessions.Login(c.Request.Context(), user, *company)
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"token":   token,
			"session": sess,
		},
	})
}

// DevLogin handles POST /auth/dev-login. Only routed in development
// with auto-login enabled.
func (h *AuthHandler) DevLogin(c *gin.Context) {
	sess, token, err := h.sessions.DevLogin(c.Request.Context())
	if err != nil {
		h.respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Development login successful",
		"data": gin.H{
			"token":   token,
			"session": sess,
		},
	})
}

// GetSession handles GET /auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "No active session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session retrieved successfully",
		"data":    sess,
	})
}

// Logout handles POST /auth/logout. Session-scoped state goes with the
// session: the cart and the notification feed are discarded too.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "No active session",
		})
		return
	}

	h.respond.Teardown(c.Request.Context(), sess.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}
