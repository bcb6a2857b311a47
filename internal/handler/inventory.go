package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/gateway"
	"github.com/stock-ahora/truestock-api/internal/models"
	"github.com/stock-ahora/truestock-api/internal/normalize"
	"github.com/stock-ahora/truestock-api/internal/notify"
	"github.com/stock-ahora/truestock-api/internal/view"
)

// InventoryHandler serves the dashboard inventory screens: the filtered,
// sorted, paginated product view, the summary counters and low-stock alerts.
type InventoryHandler struct {
	Gateway       *gateway.Client
	Notifications *notify.Store
	Log           *zap.Logger
}

// productView is a product plus its derived stock status, computed at
// render time so it can never go stale.
type productView struct {
	models.Product
	Status models.StockStatus `json:"status"`
}

func renderProducts(records []models.Product) []productView {
	out := make([]productView, len(records))
	for i, p := range records {
		out[i] = productView{Product: p, Status: p.Status()}
	}
	return out
}

// fetchProducts pulls the full catalog for the tenant and normalizes it.
func (h *InventoryHandler) fetchProducts(c *gin.Context) ([]models.Product, *view.Summary, error) {
	tenant, err := resolveTenant(c)
	if err != nil {
		respondTenantError(c, err)
		return nil, nil, err
	}

	body, err := h.Gateway.Call(c.Request.Context(), upstreamProducts, gateway.CallOptions{
		Query:   map[string]string{"size": "all"},
		Headers: map[string]string{gateway.ClientAccountHeader: tenant},
	})
	if err != nil {
		respondGatewayError(c, err)
		return nil, nil, err
	}

	listing, err := normalize.ParseListing(body)
	if err != nil {
		h.Log.Error("unparseable product listing", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "stock gateway returned an unreadable product listing", "kind": "upstream"})
		return nil, nil, err
	}

	records := make([]models.Product, 0, len(listing.Records))
	for _, raw := range listing.Records {
		records = append(records, normalize.Product(raw))
	}
	return records, listing.Summary, nil
}

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	records, serverSummary, err := h.fetchProducts(c)
	if err != nil {
		return
	}

	result := view.Apply(records, viewQuery(c))
	c.JSON(http.StatusOK, gin.H{
		"data":        renderProducts(result.Visible),
		"total_count": result.TotalCount,
		"summary":     view.Resolve(serverSummary, records),
	})
}

func (h *InventoryHandler) GetSummary(c *gin.Context) {
	records, serverSummary, err := h.fetchProducts(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, view.Resolve(serverSummary, records))
}

// lowStock returns the records at or below their reorder threshold.
func lowStock(records []models.Product) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range records {
		if p.Status() != models.StatusInStock {
			out = append(out, p)
		}
	}
	return out
}

func (h *InventoryHandler) GetLowStockAlerts(c *gin.Context) {
	records, _, err := h.fetchProducts(c)
	if err != nil {
		return
	}
	alerts := lowStock(records)
	c.JSON(http.StatusOK, gin.H{"data": renderProducts(alerts), "total_count": len(alerts)})
}

// ScanLowStock records a notification for every product currently at or
// below its threshold.
func (h *InventoryHandler) ScanLowStock(c *gin.Context) {
	records, _, err := h.fetchProducts(c)
	if err != nil {
		return
	}

	created := make([]models.Notification, 0)
	for _, p := range lowStock(records) {
		ref := p.SKU
		if ref == "" {
			ref = p.Name
		}
		created = append(created, h.Notifications.NotifyLowStock(ref, p.CurrentStock))
	}
	c.JSON(http.StatusOK, gin.H{"created": len(created), "notifications": created})
}
