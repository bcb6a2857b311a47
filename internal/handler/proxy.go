package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/gateway"
	"github.com/stock-ahora/truestock-api/internal/models"
	"github.com/stock-ahora/truestock-api/internal/notify"
)

// StockProxyHandler exposes the passthrough routes the dashboard calls
// directly: product listing and invoice upload. It validates tenant and
// input locally, then relays the upstream response untouched.
type StockProxyHandler struct {
	Gateway       *gateway.Client
	Notifications *notify.Store
	Log           *zap.Logger
}

func (h *StockProxyHandler) ListProducts(c *gin.Context) {
	tenant, err := resolveTenant(c)
	if err != nil {
		respondTenantError(c, err)
		return
	}

	body, err := h.Gateway.Call(c.Request.Context(), upstreamProducts, gateway.CallOptions{
		Query: map[string]string{
			"page": c.Query("page"),
			"size": c.Query("size"),
		},
		Headers: map[string]string{gateway.ClientAccountHeader: tenant},
	})
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *StockProxyHandler) CreateRequest(c *gin.Context) {
	tenant, err := resolveTenant(c)
	if err != nil {
		respondTenantError(c, err)
		return
	}

	reqType := models.RequestDirection(c.PostForm("type"))
	if !reqType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be 'in' or 'out'"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()
	if header.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is empty"})
		return
	}

	// Re-package the multipart body preserving the original filename and
	// content type before forwarding.
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="`+header.Filename+`"`)
	if ct := header.Header.Get("Content-Type"); ct != "" {
		partHeader.Set("Content-Type", ct)
	}
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload", "kind": "unexpected"})
		return
	}
	if _, err := io.Copy(part, file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload", "kind": "unexpected"})
		return
	}
	writer.WriteField("type", string(reqType))
	writer.Close()

	body, err := h.Gateway.Call(c.Request.Context(), upstreamRequests, gateway.CallOptions{
		Method:      http.MethodPost,
		Body:        &buf,
		ContentType: writer.FormDataContentType(),
		Headers:     map[string]string{gateway.ClientAccountHeader: tenant},
	})
	if err != nil {
		var httpErr *gateway.HTTPError
		if errors.As(err, &httpErr) {
			h.Notifications.NotifyOCRFailure(requestID(httpErr.Body))
		}
		respondGatewayError(c, err)
		return
	}

	if id := requestID(body); id != "" {
		h.Notifications.NotifyInvoiceProcessed(id)
	}
	c.Data(http.StatusCreated, "application/json", body)
}

// requestID pulls the request id out of an upstream response body, if any.
func requestID(body []byte) string {
	var parsed struct {
		ID        string `json:"id"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.ID != "" {
		return parsed.ID
	}
	return parsed.RequestID
}
