package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/gateway"
	"github.com/stock-ahora/truestock-api/internal/models"
)

// ReportsHandler aggregates the ingestion queue over a date range for the
// reports screen.
type ReportsHandler struct {
	Gateway *gateway.Client
	Log     *zap.Logger
}

func (h *ReportsHandler) GetRequestsReport(c *gin.Context) {
	requests := RequestsHandler{Gateway: h.Gateway, Log: h.Log}
	records, ok := requests.fetchRequests(c)
	if !ok {
		return
	}

	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")
	if startDateStr != "" && endDateStr != "" {
		// Parse dates assuming YYYY-MM-DD
		startDate, err1 := time.Parse("2006-01-02", startDateStr)
		endDate, err2 := time.Parse("2006-01-02", endDateStr)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
			return
		}
		// Set end date to end of day
		endDate = endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

		inRange := make([]models.StockRequest, 0, len(records))
		for _, r := range records {
			if !r.CreatedAt.Before(startDate) && !r.CreatedAt.After(endDate) {
				inRange = append(inRange, r)
			}
		}
		records = inRange
	}

	totalIn := decimal.Zero
	totalOut := decimal.Zero
	var pending, approved, rejected int

	for _, r := range records {
		switch r.Status {
		case models.RequestApproved:
			approved++
		case models.RequestRejected:
			rejected++
		default:
			pending++
		}
		if r.Direction == models.DirectionOut {
			totalOut = totalOut.Add(r.Total())
		} else {
			totalIn = totalIn.Add(r.Total())
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": gin.H{
			"total_requests": len(records),
			"pending":        pending,
			"approved":       approved,
			"rejected":       rejected,
			"total_in":       totalIn,
			"total_out":      totalOut,
		},
		"requests": renderRequests(records),
	})
}
