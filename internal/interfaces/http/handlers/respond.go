// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/loyalty-portal/internal/domain/cart"
	"github.com/your-org/loyalty-portal/internal/domain/session"
	"github.com/your-org/loyalty-portal/internal/domain/ui"
	"github.com/your-org/loyalty-portal/internal/interfaces/http/middleware"
	"github.com/your-org/loyalty-portal/internal/loyalty"
)

// Responder maps portal errors to HTTP responses. It holds the session
// stores because an authorization failure from the loyalty backend
// invalidates the whole session: the stored record, the cart, and the
// notification feed all go before the 401 reaches the client, so the
// same bearer token cannot pass the session middleware again.
type Responder struct {
	sessions *session.Manager
	carts    *cart.Store
	feed     *ui.Feed
	logger   *logrus.Logger
}

// NewResponder creates a responder bound to the session stores
func NewResponder(sessions *session.Manager, carts *cart.Store, feed *ui.Feed, logger *logrus.Logger) *Responder {
	return &Responder{
		sessions: sessions,
		carts:    carts,
		feed:     feed,
		logger:   logger,
	}
}

// Error writes the HTTP response for err, tearing the session down first
// when the loyalty backend rejected our credentials.
func (r *Responder) Error(c *gin.Context, err error) {
	if loyalty.IsAuthorization(err) {
		if sess, ok := middleware.GetSessionFromContext(c); ok {
			r.Teardown(c.Request.Context(), sess.ID)
		}
	}
	respondError(c, err)
}

// Teardown discards everything keyed by a session: the durable record,
// the in-memory cart, and the notification feed.
func (r *Responder) Teardown(ctx context.Context, sessionID string) {
	if err := r.sessions.Logout(ctx, sessionID); err != nil {
		r.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to clear session")
	}
	r.carts.Drop(sessionID)
	r.feed.Clear(sessionID)
}

// respondError maps a portal error to an HTTP status. Validation errors
// are the caller's fault, authorization errors tear the session down on
// the client, and everything upstream surfaces as a gateway error.
func respondError(c *gin.Context, err error) {
	apiErr, ok := loyalty.AsAPIError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	switch apiErr.Kind {
	case loyalty.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": apiErr.Message,
		})
	case loyalty.KindAuthorization:
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": apiErr.Message,
		})
	case loyalty.KindNetwork:
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Loyalty backend is unreachable",
		})
	default:
		status := http.StatusBadGateway
		if apiErr.Status == http.StatusNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": apiErr.Message,
		})
	}
}
