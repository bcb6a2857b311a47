package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/gateway"
	"github.com/stock-ahora/truestock-api/internal/models"
	"github.com/stock-ahora/truestock-api/internal/normalize"
	"github.com/stock-ahora/truestock-api/internal/view"
)

// RequestsHandler serves the OCR ingestion queue: the stock requests the
// upstream service extracted from uploaded invoices.
type RequestsHandler struct {
	Gateway *gateway.Client
	Log     *zap.Logger
}

// requestView is a stock request plus its recomputed total.
type requestView struct {
	models.StockRequest
	Total decimal.Decimal `json:"total"`
}

func renderRequests(records []models.StockRequest) []requestView {
	out := make([]requestView, len(records))
	for i, r := range records {
		out[i] = requestView{StockRequest: r, Total: r.Total()}
	}
	return out
}

func (h *RequestsHandler) fetchRequests(c *gin.Context) ([]models.StockRequest, bool) {
	tenant, err := resolveTenant(c)
	if err != nil {
		respondTenantError(c, err)
		return nil, false
	}

	body, err := h.Gateway.Call(c.Request.Context(), upstreamRequests, gateway.CallOptions{
		Query:   map[string]string{"size": "all"},
		Headers: map[string]string{gateway.ClientAccountHeader: tenant},
	})
	if err != nil {
		respondGatewayError(c, err)
		return nil, false
	}

	listing, err := normalize.ParseListing(body)
	if err != nil {
		h.Log.Error("unparseable request listing", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "stock gateway returned an unreadable request listing", "kind": "upstream"})
		return nil, false
	}

	records := make([]models.StockRequest, 0, len(listing.Records))
	for _, raw := range listing.Records {
		records = append(records, normalize.Request(raw))
	}
	return records, true
}

func (h *RequestsHandler) List(c *gin.Context) {
	records, ok := h.fetchRequests(c)
	if !ok {
		return
	}

	status := c.Query("status")
	direction := c.Query("direction")

	filtered := make([]models.StockRequest, 0, len(records))
	for _, r := range records {
		if status != "" && status != view.FilterAll && string(r.Status) != status {
			continue
		}
		if direction != "" && direction != view.FilterAll && string(r.Direction) != direction {
			continue
		}
		filtered = append(filtered, r)
	}

	q := viewQuery(c)
	total := len(filtered)
	if q.PageSize != view.PageSizeAll {
		page := q.Page
		if page < 0 {
			page = 0
		}
		// Clamp to the last page when a filter shrinks the set.
		if total > 0 && page > (total-1)/q.PageSize {
			page = (total - 1) / q.PageSize
		}
		start := page * q.PageSize
		if start > total {
			start = total
		}
		end := start + q.PageSize
		if end > total {
			end = total
		}
		filtered = filtered[start:end]
	}

	c.JSON(http.StatusOK, gin.H{"data": renderRequests(filtered), "total_count": total})
}

func (h *RequestsHandler) Get(c *gin.Context) {
	tenant, err := resolveTenant(c)
	if err != nil {
		respondTenantError(c, err)
		return
	}

	body, err := h.Gateway.Call(c.Request.Context(), upstreamRequests+"/"+c.Param("id"), gateway.CallOptions{
		Headers: map[string]string{gateway.ClientAccountHeader: tenant},
	})
	if err != nil {
		respondGatewayError(c, err)
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		h.Log.Error("unparseable request detail", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "stock gateway returned an unreadable request", "kind": "upstream"})
		return
	}

	req := normalize.Request(raw)
	c.JSON(http.StatusOK, requestView{StockRequest: req, Total: req.Total()})
}
