package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/notify"
	"github.com/stock-ahora/truestock-api/internal/state"
)

// SettingsKey is the fixed storage key for the dashboard settings document.
const SettingsKey = "truestock.settings"

// SettingsHandler persists the dashboard settings document as an opaque
// JSON object and announces changes on the notification feed.
type SettingsHandler struct {
	KV            state.KV
	Notifications *notify.Store
	Log           *zap.Logger
}

func (h *SettingsHandler) Get(c *gin.Context) {
	raw, ok, err := h.KV.Load(SettingsKey)
	if err != nil {
		h.Log.Error("failed to load settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "settings must be a JSON document"})
		return
	}

	if err := h.KV.Save(SettingsKey, body); err != nil {
		h.Log.Error("failed to persist settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	h.Notifications.NotifyConfigChanged(c.GetString("role"))
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}
