package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/gateway"
	"github.com/stock-ahora/truestock-api/internal/models"
	"github.com/stock-ahora/truestock-api/internal/normalize"
	"github.com/stock-ahora/truestock-api/internal/notify"
	"github.com/stock-ahora/truestock-api/internal/view"
)

// DashboardHandler serves the top-level dashboard load. When the gateway is
// down it answers with illustrative placeholder data instead of an error, so
// the landing screen never renders blank; the payload is flagged so the
// client can label it.
type DashboardHandler struct {
	Gateway       *gateway.Client
	Notifications *notify.Store
	Log           *zap.Logger
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	tenant, err := resolveTenant(c)
	if err != nil {
		respondTenantError(c, err)
		return
	}

	records, serverSummary, live := h.loadCatalog(c, tenant)
	summary := view.Resolve(serverSummary, records)

	c.JSON(http.StatusOK, gin.H{
		"summary":      summary,
		"low_stock":    renderProducts(lowStock(records)),
		"unread_count": h.Notifications.UnreadCount(),
		"placeholder":  !live,
	})
}

func (h *DashboardHandler) loadCatalog(c *gin.Context, tenant string) ([]models.Product, *view.Summary, bool) {
	body, err := h.Gateway.Call(c.Request.Context(), upstreamProducts, gateway.CallOptions{
		Query:   map[string]string{"size": "all"},
		Headers: map[string]string{gateway.ClientAccountHeader: tenant},
	})
	if err != nil {
		h.Log.Warn("dashboard falling back to placeholder data", zap.Error(err))
		return placeholderProducts(), nil, false
	}

	listing, err := normalize.ParseListing(body)
	if err != nil {
		h.Log.Warn("dashboard falling back to placeholder data", zap.Error(err))
		return placeholderProducts(), nil, false
	}

	records := make([]models.Product, 0, len(listing.Records))
	for _, raw := range listing.Records {
		records = append(records, normalize.Product(raw))
	}
	return records, listing.Summary, true
}

// placeholderProducts is the illustrative sample set shown while the
// backend is unreachable.
func placeholderProducts() []models.Product {
	now := time.Now()
	return []models.Product{
		{ID: "sample-1", Name: "Sample Coffee Beans", Category: "Coffee", SKU: "SAMPLE-001", CurrentStock: 24, MinStock: 10, UnitPrice: decimal.NewFromFloat(12.90), State: normalize.DefaultState, UpdatedAt: now},
		{ID: "sample-2", Name: "Sample Green Tea", Category: "Tea", SKU: "SAMPLE-002", CurrentStock: 4, MinStock: 10, UnitPrice: decimal.NewFromFloat(7.50), State: normalize.DefaultState, UpdatedAt: now},
		{ID: "sample-3", Name: "Sample Filters", Category: "Accessories", SKU: "SAMPLE-003", CurrentStock: 0, MinStock: 5, UnitPrice: decimal.NewFromFloat(3.20), State: normalize.DefaultState, UpdatedAt: now},
	}
}
