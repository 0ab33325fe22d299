// internal/interfaces/http/handlers/notification.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/loyalty-portal/internal/domain/ui"
	"github.com/your-org/loyalty-portal/internal/interfaces/http/middleware"
)

// NotificationHandler handles the per-session notification feed
type NotificationHandler struct {
	feed *ui.Feed
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(feed *ui.Feed) *NotificationHandler {
	return &NotificationHandler{
		feed: feed,
	}
}

// GetNotifications handles GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Notifications retrieved successfully",
		"data":    h.feed.List(sess.ID),
	})
}

// DismissNotification handles DELETE /notifications/:id
func (h *NotificationHandler) DismissNotification(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)
	h.feed.Dismiss(sess.ID, c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification dismissed",
	})
}

// ClearNotifications handles DELETE /notifications
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	sess, _ := middleware.GetSessionFromContext(c)
	h.feed.Clear(sess.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Notifications cleared",
	})
}
