package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stock-ahora/truestock-api/config"
	"github.com/stock-ahora/truestock-api/internal/gateway"
)

type MetaHandler struct {
	Gateway *gateway.Client
}

func (h *MetaHandler) GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":                config.AppConfig.App.Name,
		"version":            config.AppConfig.App.Version,
		"env":                config.AppConfig.Server.Env,
		"gateway_configured": h.Gateway.Configured(),
	})
}
