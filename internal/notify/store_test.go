package notify

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/models"
	"github.com/stock-ahora/truestock-api/internal/state"
)

func newTestStore(t *testing.T) (*Store, *state.MemoryKV) {
	t.Helper()
	kv := state.NewMemoryKV()
	return NewStore(kv, zap.NewNop()), kv
}

func TestStoreSeedsOnFirstLoad(t *testing.T) {
	store, kv := newTestStore(t)
	if len(store.List()) == 0 {
		t.Fatal("fresh store must install the seed set")
	}

	// The seed is persisted immediately, so a second store over the same
	// storage loads it instead of reseeding.
	if _, ok, _ := kv.Load(StorageKey); !ok {
		t.Fatal("seed set was not persisted")
	}
}

func TestStorePrefersPersistedDataOverSeed(t *testing.T) {
	kv := state.NewMemoryKV()
	persisted := []models.Notification{{ID: "n1", Title: "Existing", Type: models.SeverityInfo, Timestamp: time.Now().UTC()}}
	raw, _ := json.Marshal(persisted)
	kv.Save(StorageKey, raw)

	store := NewStore(kv, zap.NewNop())
	items := store.List()
	if len(items) != 1 || items[0].ID != "n1" {
		t.Fatalf("expected the persisted list, got %d items", len(items))
	}
}

func TestStoreReseedsOnCorruptData(t *testing.T) {
	kv := state.NewMemoryKV()
	kv.Save(StorageKey, []byte("{not json"))

	store := NewStore(kv, zap.NewNop())
	if len(store.List()) == 0 {
		t.Fatal("corrupt persisted data must fall back to the seed set")
	}
}

func TestStoreAddPrependsNewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	store.ClearAll()

	store.Add(AddInput{Title: "first", Message: "m", Type: models.SeverityInfo})
	second := store.Add(AddInput{Title: "second", Message: "m", Type: models.SeverityWarning})

	items := store.List()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID {
		t.Fatal("newest notification must come first")
	}
	if items[0].ID == items[1].ID {
		t.Fatal("ids must be unique")
	}
}

func TestStoreAddThenMarkAllAsRead(t *testing.T) {
	store, _ := newTestStore(t)
	store.Add(AddInput{Title: "t", Message: "m"})
	store.MarkAllAsRead()
	if store.UnreadCount() != 0 {
		t.Fatalf("expected zero unread, got %d", store.UnreadCount())
	}
}

func TestStoreMarkAsRead(t *testing.T) {
	store, _ := newTestStore(t)
	store.ClearAll()
	n := store.Add(AddInput{Title: "t", Message: "m"})

	if !store.MarkAsRead(n.ID) {
		t.Fatal("expected existing id to be found")
	}
	if store.UnreadCount() != 0 {
		t.Fatal("notification still unread after MarkAsRead")
	}
	if store.MarkAsRead("missing-id") {
		t.Fatal("unknown id must report false")
	}
}

func TestStoreRemove(t *testing.T) {
	store, _ := newTestStore(t)
	store.ClearAll()
	n := store.Add(AddInput{Title: "t", Message: "m"})

	if !store.Remove(n.ID) {
		t.Fatal("expected removal to succeed")
	}
	if len(store.List()) != 0 {
		t.Fatal("list must be empty after removal")
	}
	if store.Remove(n.ID) {
		t.Fatal("second removal must report false")
	}
}

func TestClearAllSurvivesReload(t *testing.T) {
	kv := state.NewMemoryKV()
	store := NewStore(kv, zap.NewNop())
	store.Add(AddInput{Title: "real", Message: "m"})
	store.ClearAll()

	// A reload without new adds must stay empty: the seed set must not
	// reappear once real data existed.
	reloaded := NewStore(kv, zap.NewNop())
	if len(reloaded.List()) != 0 {
		t.Fatalf("seed reappeared after clear: %d items", len(reloaded.List()))
	}
}

func TestStorePersistenceRoundTrip(t *testing.T) {
	kv := state.NewMemoryKV()
	store := NewStore(kv, zap.NewNop())
	store.ClearAll()
	store.Add(AddInput{Title: "t1", Message: "m1", Type: models.SeverityError, ActionURL: "/inventory"})
	store.Add(AddInput{Title: "t2", Message: "m2", Type: models.SeveritySuccess})
	before := store.List()

	after := NewStore(kv, zap.NewNop()).List()
	if len(after) != len(before) {
		t.Fatalf("round trip changed length: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Title != before[i].Title ||
			after[i].Message != before[i].Message || after[i].Type != before[i].Type ||
			after[i].Read != before[i].Read || after[i].ActionURL != before[i].ActionURL {
			t.Fatalf("round trip mutated record %d:\nbefore %+v\nafter  %+v", i, before[i], after[i])
		}
		if !after[i].Timestamp.Equal(before[i].Timestamp) {
			t.Fatalf("timestamp did not survive the round trip: %v vs %v", before[i].Timestamp, after[i].Timestamp)
		}
	}
}

func TestStoreImportKeepsFeedFields(t *testing.T) {
	store, _ := newTestStore(t)
	store.ClearAll()

	when := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	count := store.Import([]models.Notification{
		{Title: "Feed", Message: "from upstream", Type: models.SeverityInfo, Timestamp: when, Read: true},
	})
	if count != 1 {
		t.Fatalf("expected 1 imported, got %d", count)
	}

	items := store.List()
	if items[0].ID == "" {
		t.Fatal("imported entry must get an id")
	}
	if !items[0].Timestamp.Equal(when) || !items[0].Read {
		t.Fatal("import must preserve timestamp and read flag")
	}
}

func TestProducerTemplates(t *testing.T) {
	store, _ := newTestStore(t)
	store.ClearAll()

	low := store.NotifyLowStock("COF-001", 2)
	if low.Type != models.SeverityWarning {
		t.Errorf("low stock must be a warning, got %s", low.Type)
	}

	ok := store.NotifyInvoiceProcessed("r-1")
	if ok.Type != models.SeveritySuccess || ok.ActionURL != "/requests/r-1" {
		t.Errorf("unexpected invoice notification: %+v", ok)
	}

	fail := store.NotifyOCRFailure("")
	if fail.Type != models.SeverityError {
		t.Errorf("scan failure must be an error, got %s", fail.Type)
	}

	cfg := store.NotifyConfigChanged("admin")
	if cfg.Type != models.SeverityInfo {
		t.Errorf("config change must be info, got %s", cfg.Type)
	}

	if store.UnreadCount() != 4 {
		t.Errorf("expected 4 unread, got %d", store.UnreadCount())
	}
}
