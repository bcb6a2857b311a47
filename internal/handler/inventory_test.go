package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/gateway"
	"github.com/stock-ahora/truestock-api/internal/notify"
	"github.com/stock-ahora/truestock-api/internal/state"
)

const catalogPayload = `{"data":[
	{"id":"1","name":"Arabica Beans","category":"Coffee","sku":"COF-001","current_stock":20,"min_stock":5,"unit_price":12.5},
	{"id":"2","name":"Robusta Beans","category":"Coffee","sku":"COF-002","current_stock":0,"min_stock":5,"unit_price":9},
	{"id":"3","name":"Green Tea","category":"Tea","sku":"TEA-001","current_stock":3,"min_stock":10,"unit_price":7.25}
],"total":3}`

func newInventoryRouter(upstreamURL string) (*gin.Engine, *notify.Store) {
	store := notify.NewStore(state.NewMemoryKV(), zap.NewNop())
	store.ClearAll()
	h := &InventoryHandler{
		Gateway:       gateway.New(upstreamURL, "", zap.NewNop()),
		Notifications: store,
		Log:           zap.NewNop(),
	}
	r := gin.New()
	r.GET("/api/v1/inventory/products", h.ListProducts)
	r.GET("/api/v1/inventory/summary", h.GetSummary)
	r.GET("/api/v1/inventory/alerts", h.GetLowStockAlerts)
	r.POST("/api/v1/inventory/alerts/scan", h.ScanLowStock)
	return r, store
}

func catalogUpstream() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogPayload))
	}))
}

func TestInventoryListProductsAppliesPipeline(t *testing.T) {
	setTestConfig(testTenant)
	upstream := catalogUpstream()
	defer upstream.Close()

	r, _ := newInventoryRouter(upstream.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/inventory/products?search=beans&sort_key=name&sort_dir=asc&page=0&size=10", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
		TotalCount int `json:"total_count"`
		Summary    struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if resp.TotalCount != 2 || len(resp.Data) != 2 {
		t.Fatalf("expected 2 bean products, got %d / %d", resp.TotalCount, len(resp.Data))
	}
	if resp.Data[0].ID != "1" || resp.Data[1].ID != "2" {
		t.Fatalf("unexpected sort order: %+v", resp.Data)
	}
	if resp.Data[1].Status != "out_of_stock" {
		t.Fatalf("derived status missing from response: %+v", resp.Data[1])
	}
	// Summary covers the full record set, not just the visible page.
	if resp.Summary.Total != 3 {
		t.Fatalf("summary must cover all records, got %d", resp.Summary.Total)
	}
}

func TestInventorySummary(t *testing.T) {
	setTestConfig(testTenant)
	upstream := catalogUpstream()
	defer upstream.Close()

	r, _ := newInventoryRouter(upstream.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/summary", nil)
	r.ServeHTTP(w, req)

	var summary struct {
		Total      int `json:"total"`
		InStock    int `json:"in_stock"`
		LowStock   int `json:"low_stock"`
		OutOfStock int `json:"out_of_stock"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Total != 3 || summary.InStock != 1 || summary.LowStock != 1 || summary.OutOfStock != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestInventorySummaryPrefersServerValue(t *testing.T) {
	setTestConfig(testTenant)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[],"total":0,"summary":{"total":9,"in_stock":5,"low_stock":3,"out_of_stock":1}}`))
	}))
	defer upstream.Close()

	r, _ := newInventoryRouter(upstream.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/summary", nil)
	r.ServeHTTP(w, req)

	var summary struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Total != 9 {
		t.Fatalf("well-formed server summary must win, got %+v", summary)
	}
}

func TestInventoryScanLowStockRecordsNotifications(t *testing.T) {
	setTestConfig(testTenant)
	upstream := catalogUpstream()
	defer upstream.Close()

	r, store := newInventoryRouter(upstream.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/alerts/scan", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	// Robusta (out of stock) and Green Tea (low) should each get an alert.
	if got := len(store.List()); got != 2 {
		t.Fatalf("expected 2 low-stock notifications, got %d", got)
	}
}

func TestInventoryFallsBackWhenListingUnreadable(t *testing.T) {
	setTestConfig(testTenant)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"garbage"`))
	}))
	defer upstream.Close()

	r, _ := newInventoryRouter(upstream.URL)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/products", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for unreadable listing, got %d", w.Code)
	}
}
