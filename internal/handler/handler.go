package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stock-ahora/truestock-api/config"
	"github.com/stock-ahora/truestock-api/internal/gateway"
	"github.com/stock-ahora/truestock-api/internal/view"
)

// Upstream endpoints behind the stock gateway.
const (
	upstreamProducts      = "/api/v1/stock/products"
	upstreamRequests      = "/api/v1/stock/request"
	upstreamForecast      = "/forecast"
	upstreamNotifications = "/notification"
)

// resolveTenant picks the client account id for a request: explicit header,
// then query parameter, then the token claim, then the configured fallback.
// Malformed ids are rejected before any upstream call happens.
func resolveTenant(c *gin.Context) (string, error) {
	header := c.GetHeader(gateway.ClientAccountHeader)
	if header == "" {
		header = c.GetString("clientAccountID")
	}
	return gateway.ResolveClientAccount(
		header,
		c.Query("client_account_id"),
		config.AppConfig.Gateway.ClientAccountID,
	)
}

// respondTenantError maps tenant resolution failures to a 400.
func respondTenantError(c *gin.Context, err error) {
	if errors.Is(err, gateway.ErrMissingClientAccount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_account_id is required"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "client_account_id must be a 36-character UUID"})
}

// respondGatewayError maps a gateway failure to the proxy error taxonomy:
// configuration errors are the proxy's fault (500), upstream errors relay the
// original status and body, anything else is an unexpected failure (502).
func respondGatewayError(c *gin.Context, err error) {
	var httpErr *gateway.HTTPError
	switch {
	case errors.Is(err, gateway.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stock gateway is not configured", "kind": "config"})
	case errors.As(err, &httpErr):
		c.Data(httpErr.Status, "application/json", httpErr.Body)
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "unexpected error calling the stock gateway", "kind": "unexpected"})
	}
}

// viewQuery parses the listing parameters shared by the dashboard screens.
// A size of "all" disables pagination.
func viewQuery(c *gin.Context) view.Query {
	q := view.Query{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		SortKey:  c.Query("sort_key"),
		SortDir:  view.SortDir(c.DefaultQuery("sort_dir", string(view.SortAsc))),
		PageSize: 10,
	}
	if q.SortDir != view.SortDesc {
		q.SortDir = view.SortAsc
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "0")); err == nil {
		q.Page = page
	}
	if size := c.DefaultQuery("size", "10"); size == "all" {
		q.PageSize = view.PageSizeAll
	} else if n, err := strconv.Atoi(size); err == nil && n > 0 {
		q.PageSize = n
	}
	return q
}
