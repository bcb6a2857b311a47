package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/gateway"
)

// ForecastHandler relays the predictive-model view to the forecasting
// service. The series, accuracy metrics and trend metadata pass through
// untouched.
type ForecastHandler struct {
	Gateway *gateway.Client
	Log     *zap.Logger
}

func (h *ForecastHandler) GetForecast(c *gin.Context) {
	tenant, err := resolveTenant(c)
	if err != nil {
		respondTenantError(c, err)
		return
	}

	productID := c.Query("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	months := c.DefaultQuery("months", "6")
	if n, err := strconv.Atoi(months); err != nil || n < 1 || n > 24 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "months must be between 1 and 24"})
		return
	}

	body, err := h.Gateway.Call(c.Request.Context(), upstreamForecast, gateway.CallOptions{
		Query: map[string]string{
			"productId": productID,
			"months":    months,
		},
		Headers: map[string]string{gateway.ClientAccountHeader: tenant},
	})
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
