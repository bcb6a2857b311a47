package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/gateway"
	"github.com/stock-ahora/truestock-api/internal/models"
	"github.com/stock-ahora/truestock-api/internal/normalize"
	"github.com/stock-ahora/truestock-api/internal/notify"
)

// NotificationHandler exposes the alert feed: the locally owned store plus
// a pull-based sync from the remote notification service.
type NotificationHandler struct {
	Store   *notify.Store
	Gateway *gateway.Client
	Log     *zap.Logger
}

func (h *NotificationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.Store.List(),
		"unread_count":  h.Store.UnreadCount(),
	})
}

type addNotificationRequest struct {
	Title     string          `json:"title" binding:"required"`
	Message   string          `json:"message" binding:"required"`
	Type      models.Severity `json:"type"`
	ActionURL string          `json:"actionUrl"`
}

func (h *NotificationHandler) Add(c *gin.Context) {
	var req addNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n := h.Store.Add(notify.AddInput{
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		ActionURL: req.ActionURL,
	})
	c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	if !h.Store.MarkAsRead(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	h.Store.MarkAllAsRead()
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) Remove(c *gin.Context) {
	if !h.Store.Remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification removed"})
}

func (h *NotificationHandler) ClearAll(c *gin.Context) {
	h.Store.ClearAll()
	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}

// Sync pulls the remote notification feed and imports it into the local
// store.
func (h *NotificationHandler) Sync(c *gin.Context) {
	tenant, err := resolveTenant(c)
	if err != nil {
		respondTenantError(c, err)
		return
	}

	body, err := h.Gateway.Call(c.Request.Context(), upstreamNotifications, gateway.CallOptions{
		Headers: map[string]string{gateway.ClientAccountHeader: tenant},
	})
	if err != nil {
		respondGatewayError(c, err)
		return
	}

	listing, err := normalize.ParseListing(body)
	if err != nil {
		h.Log.Error("unparseable notification feed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "notification feed is unreadable", "kind": "upstream"})
		return
	}

	imported := make([]models.Notification, 0, len(listing.Records))
	for _, raw := range listing.Records {
		imported = append(imported, normalize.Notification(raw))
	}
	count := h.Store.Import(imported)
	c.JSON(http.StatusOK, gin.H{"imported": count, "unread_count": h.Store.UnreadCount()})
}
