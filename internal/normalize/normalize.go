// Package normalize maps the heterogeneous JSON shapes returned by the
// upstream services into the canonical records the rest of the service works
// with. Every mapping is driven by an ordered candidate list per canonical
// field (server/snake_case form first), so normalizing an already-canonical
// record returns it unchanged. All functions are pure and total: missing
// optional fields fall back to defaults, never to an error.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stock-ahora/truestock-api/internal/models"
)

// DefaultCategory is the placeholder for records without a category.
const DefaultCategory = "—"

// DefaultState is the lifecycle state assumed when the upstream omits one.
const DefaultState = "active"

// Candidate key lists, canonical form first. Order is the precedence rule.
var (
	idKeys        = []string{"id", "ID", "Id", "product_id", "productId"}
	nameKeys      = []string{"name", "Name", "product_name", "productName"}
	categoryKeys  = []string{"category", "Category", "category_name", "categoryName"}
	skuKeys       = []string{"sku", "SKU", "code", "Code", "barcode"}
	stockKeys     = []string{"current_stock", "currentStock", "stock", "Stock", "quantity"}
	minStockKeys  = []string{"min_stock", "minStock", "minimum_stock", "low_stock_threshold", "threshold"}
	priceKeys     = []string{"unit_price", "unitPrice", "price", "Price"}
	providerKeys  = []string{"provider", "Provider", "supplier", "supplier_name", "supplierName"}
	stateKeys     = []string{"state", "State", "status", "Status"}
	createdKeys   = []string{"created_at", "createdAt", "CreatedAt", "date", "Date"}
	updatedKeys   = []string{"updated_at", "updatedAt", "UpdatedAt", "last_update", "lastUpdate"}
	directionKeys = []string{"direction", "Direction", "type", "Type"}
	movementKeys  = []string{"movements", "Movements", "items", "lines", "detail"}
	quantityKeys  = []string{"quantity", "Quantity", "qty", "amount"}
	messageKeys   = []string{"message", "Message", "body", "text"}
	titleKeys     = []string{"title", "Title", "subject"}
	typeKeys      = []string{"type", "Type", "severity", "level"}
	readKeys      = []string{"read", "Read", "is_read", "IsRead"}
	timestampKeys = []string{"timestamp", "Timestamp", "date", "Date", "created_at", "createdAt"}
	actionURLKeys = []string{"actionUrl", "action_url", "link", "url"}
)

// Product maps one raw product object into the canonical record.
func Product(raw map[string]any) models.Product {
	return models.Product{
		ID:           str(raw, idKeys, ""),
		Name:         str(raw, nameKeys, ""),
		Category:     str(raw, categoryKeys, DefaultCategory),
		SKU:          str(raw, skuKeys, ""),
		CurrentStock: integer(raw, stockKeys, 0),
		MinStock:     integer(raw, minStockKeys, 0),
		UnitPrice:    dec(raw, priceKeys),
		Provider:     str(raw, providerKeys, ""),
		State:        state(raw),
		UpdatedAt:    timestamp(raw, updatedKeys),
	}
}

// Request maps one raw stock-request object, movements included.
func Request(raw map[string]any) models.StockRequest {
	req := models.StockRequest{
		ID:        str(raw, idKeys, ""),
		Direction: direction(raw),
		Status:    requestStatus(raw),
		CreatedAt: timestamp(raw, createdKeys),
		UpdatedAt: timestamp(raw, updatedKeys),
		Movements: []models.Movement{},
	}
	if v, ok := lookup(raw, movementKeys); ok {
		if list, ok := v.([]any); ok {
			for _, item := range list {
				if m, ok := item.(map[string]any); ok {
					req.Movements = append(req.Movements, movement(m))
				}
			}
		}
	}
	if req.UpdatedAt.IsZero() {
		req.UpdatedAt = req.CreatedAt
	}
	return req
}

func movement(raw map[string]any) models.Movement {
	return models.Movement{
		ProductID:   str(raw, idKeys, ""),
		ProductName: str(raw, nameKeys, ""),
		Quantity:    integer(raw, quantityKeys, 0),
		UnitPrice:   dec(raw, priceKeys),
	}
}

// Notification maps an entry of the remote feed ({Message, Type, IsRead,
// Date} upstream, canonical form already lowercase).
func Notification(raw map[string]any) models.Notification {
	return models.Notification{
		ID:        str(raw, idKeys, ""),
		Title:     str(raw, titleKeys, "Notification"),
		Message:   str(raw, messageKeys, ""),
		Type:      severity(raw),
		Timestamp: timestamp(raw, timestampKeys),
		Read:      boolean(raw, readKeys),
		ActionURL: str(raw, actionURLKeys, ""),
	}
}

func state(raw map[string]any) string {
	s := str(raw, stateKeys, DefaultState)
	// The legacy backend reports lifecycle state in Spanish.
	switch strings.ToLower(s) {
	case "activo", "active", "":
		return DefaultState
	case "inactivo", "inactive":
		return "inactive"
	default:
		return strings.ToLower(s)
	}
}

func direction(raw map[string]any) models.RequestDirection {
	switch strings.ToLower(str(raw, directionKeys, "")) {
	case "out", "salida", "egreso":
		return models.DirectionOut
	default:
		return models.DirectionIn
	}
}

func requestStatus(raw map[string]any) models.RequestStatus {
	switch strings.ToLower(str(raw, []string{"status", "Status", "state"}, "")) {
	case "approved", "aprobado", "completed":
		return models.RequestApproved
	case "rejected", "rechazado", "failed":
		return models.RequestRejected
	default:
		return models.RequestPending
	}
}

func severity(raw map[string]any) models.Severity {
	s := models.Severity(strings.ToLower(str(raw, typeKeys, "")))
	if !s.Valid() {
		return models.SeverityInfo
	}
	return s
}

// lookup returns the first candidate key present in raw.
func lookup(raw map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func str(raw map[string]any, keys []string, def string) string {
	v, ok := lookup(raw, keys)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

func integer(raw map[string]any, keys []string, def int) int {
	v, ok := lookup(raw, keys)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return int(d.IntPart())
		}
	}
	return def
}

func dec(raw map[string]any, keys []string) decimal.Decimal {
	v, ok := lookup(raw, keys)
	if !ok {
		return decimal.Zero
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func boolean(raw map[string]any, keys []string) bool {
	v, ok := lookup(raw, keys)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func timestamp(raw map[string]any, keys []string) time.Time {
	v, ok := lookup(raw, keys)
	if !ok {
		return time.Time{}
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
