package normalize

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stock-ahora/truestock-api/internal/models"
)

func TestProductFieldVariants(t *testing.T) {
	raw := map[string]any{
		"ID":           "p-1",
		"productName":  "Arabica Beans",
		"Category":     "Coffee",
		"SKU":          "COF-001",
		"currentStock": float64(12),
		"minStock":     float64(5),
		"unitPrice":    10.5,
		"supplier":     "Andes Co",
		"Status":       "Activo",
		"updatedAt":    "2026-03-01T10:00:00Z",
	}

	p := Product(raw)
	if p.ID != "p-1" || p.Name != "Arabica Beans" || p.SKU != "COF-001" {
		t.Fatalf("identity fields not mapped: %+v", p)
	}
	if p.CurrentStock != 12 || p.MinStock != 5 {
		t.Fatalf("stock fields not mapped: %+v", p)
	}
	if !p.UnitPrice.Equal(decimal.NewFromFloat(10.5)) {
		t.Fatalf("price not mapped: %s", p.UnitPrice)
	}
	if p.Provider != "Andes Co" {
		t.Fatalf("provider not mapped: %q", p.Provider)
	}
	if p.State != "active" {
		t.Fatalf("legacy state not translated: %q", p.State)
	}
	if p.UpdatedAt.IsZero() {
		t.Fatal("timestamp not parsed")
	}
}

func TestProductSnakeCaseWinsOverCamelCase(t *testing.T) {
	raw := map[string]any{
		"current_stock": float64(7),
		"currentStock":  float64(99),
	}
	if p := Product(raw); p.CurrentStock != 7 {
		t.Fatalf("server form must win, got %d", p.CurrentStock)
	}
}

func TestProductDefaults(t *testing.T) {
	p := Product(map[string]any{})
	if p.Category != DefaultCategory {
		t.Errorf("expected placeholder category, got %q", p.Category)
	}
	if p.CurrentStock != 0 || p.MinStock != 0 || !p.UnitPrice.Equal(decimal.Zero) {
		t.Errorf("numeric fields must default to zero: %+v", p)
	}
	if p.State != DefaultState {
		t.Errorf("expected default state, got %q", p.State)
	}
}

func TestProductIdempotent(t *testing.T) {
	canonical := models.Product{
		ID:           "p-9",
		Name:         "Green Tea",
		Category:     "Tea",
		SKU:          "TEA-001",
		CurrentStock: 4,
		MinStock:     10,
		UnitPrice:    decimal.NewFromFloat(7.25),
		Provider:     "Leaf Ltd",
		State:        "active",
	}

	encoded, err := json.Marshal(canonical)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(encoded, &raw); err != nil {
		t.Fatal(err)
	}

	again := Product(raw)
	if again.ID != canonical.ID || again.Name != canonical.Name ||
		again.Category != canonical.Category || again.SKU != canonical.SKU ||
		again.CurrentStock != canonical.CurrentStock || again.MinStock != canonical.MinStock ||
		!again.UnitPrice.Equal(canonical.UnitPrice) || again.Provider != canonical.Provider ||
		again.State != canonical.State {
		t.Fatalf("normalize is not idempotent:\n in: %+v\nout: %+v", canonical, again)
	}
}

func TestRequestWithMovements(t *testing.T) {
	raw := map[string]any{
		"id":         "r-1",
		"type":       "salida",
		"Status":     "Aprobado",
		"created_at": "2026-02-10T08:30:00Z",
		"items": []any{
			map[string]any{"product_id": "p1", "qty": float64(3), "price": 10.0},
			map[string]any{"product_id": "p2", "quantity": float64(1), "unit_price": "2.50"},
		},
	}

	req := Request(raw)
	if req.Direction != models.DirectionOut {
		t.Errorf("expected out direction, got %s", req.Direction)
	}
	if req.Status != models.RequestApproved {
		t.Errorf("expected approved, got %s", req.Status)
	}
	if len(req.Movements) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(req.Movements))
	}
	if !req.Total().Equal(decimal.NewFromFloat(32.50)) {
		t.Errorf("expected total 32.50, got %s", req.Total())
	}
	if req.UpdatedAt != req.CreatedAt {
		t.Error("missing updated_at must fall back to created_at")
	}
}

func TestRequestUnknownStatusDefaultsToPending(t *testing.T) {
	req := Request(map[string]any{"id": "r-2"})
	if req.Status != models.RequestPending {
		t.Errorf("expected pending, got %s", req.Status)
	}
	if req.Direction != models.DirectionIn {
		t.Errorf("expected in direction default, got %s", req.Direction)
	}
	if req.Movements == nil {
		t.Error("movements must be an empty slice, not nil")
	}
}

func TestNotificationFromRemoteFeed(t *testing.T) {
	raw := map[string]any{
		"Message": "Stock request processed",
		"Type":    "Success",
		"IsRead":  true,
		"Date":    "2026-03-02T12:00:00Z",
	}

	n := Notification(raw)
	if n.Message != "Stock request processed" {
		t.Errorf("message not mapped: %q", n.Message)
	}
	if n.Type != models.SeveritySuccess {
		t.Errorf("expected success severity, got %s", n.Type)
	}
	if !n.Read {
		t.Error("IsRead not mapped")
	}
	if n.Title != "Notification" {
		t.Errorf("expected default title, got %q", n.Title)
	}
	if n.Timestamp.IsZero() {
		t.Error("date not parsed")
	}
}

func TestNotificationUnknownSeverity(t *testing.T) {
	n := Notification(map[string]any{"Message": "x", "Type": "critical-ish"})
	if n.Type != models.SeverityInfo {
		t.Errorf("unknown severity must map to info, got %s", n.Type)
	}
}
