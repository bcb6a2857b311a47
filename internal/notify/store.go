package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stock-ahora/truestock-api/internal/models"
	"github.com/stock-ahora/truestock-api/internal/state"
)

// StorageKey is the fixed namespace the notification list is persisted under.
const StorageKey = "truestock.notifications"

// Store owns the dashboard's notification list. Every mutation rewrites the
// full list through the persistence port, so a restart always comes back to
// the last observed state. The seed set is installed only when nothing has
// ever been persisted; an explicitly cleared list stays empty.
type Store struct {
	mu    sync.Mutex
	kv    state.KV
	log   *zap.Logger
	items []models.Notification

	now   func() time.Time
	newID func() string
}

func NewStore(kv state.KV, log *zap.Logger) *Store {
	s := &Store{
		kv:    kv,
		log:   log,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	s.load()
	return s
}

func (s *Store) load() {
	raw, ok, err := s.kv.Load(StorageKey)
	if err != nil {
		s.log.Error("failed to load notifications, starting from seed", zap.Error(err))
	}
	if ok && err == nil {
		var items []models.Notification
		if jsonErr := json.Unmarshal(raw, &items); jsonErr == nil {
			s.items = items
			return
		}
		s.log.Warn("persisted notifications are not valid JSON, reseeding")
	}
	s.items = seedNotifications(s.now())
	s.persist()
}

// persist is called with the mutex held.
func (s *Store) persist() {
	raw, err := json.Marshal(s.items)
	if err != nil {
		s.log.Error("failed to encode notifications", zap.Error(err))
		return
	}
	if err := s.kv.Save(StorageKey, raw); err != nil {
		s.log.Error("failed to persist notifications", zap.Error(err))
	}
}

// AddInput carries the caller-controlled fields of a new notification.
type AddInput struct {
	Title     string
	Message   string
	Type      models.Severity
	ActionURL string
}

// Add creates a notification with a fresh id and the current timestamp and
// prepends it, keeping the list newest-first.
func (s *Store) Add(input AddInput) models.Notification {
	severity := input.Type
	if !severity.Valid() {
		severity = models.SeverityInfo
	}

	n := models.Notification{
		ID:        s.newID(),
		Title:     input.Title,
		Message:   input.Message,
		Type:      severity,
		Timestamp: s.now(),
		ActionURL: input.ActionURL,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Notification{n}, s.items...)
	s.persist()
	return n
}

// Import prepends notifications pulled from the remote feed, keeping their
// timestamps and read flags. Entries without an id get a fresh one.
func (s *Store) Import(items []models.Notification) int {
	if len(items) == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = s.newID()
		}
		if items[i].Timestamp.IsZero() {
			items[i].Timestamp = s.now()
		}
	}
	s.items = append(items, s.items...)
	s.persist()
	return len(items)
}

// List returns a copy of the notification list, newest first.
func (s *Store) List() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkAsRead flags one notification; reports whether the id existed.
func (s *Store) MarkAsRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			if !s.items[i].Read {
				s.items[i].Read = true
				s.persist()
			}
			return true
		}
	}
	return false
}

func (s *Store) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for i := range s.items {
		if !s.items[i].Read {
			s.items[i].Read = true
			changed = true
		}
	}
	if changed {
		s.persist()
	}
}

// Remove deletes one notification; reports whether the id existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// ClearAll empties the list. The empty list is persisted, so the seed set
// does not reappear on the next load.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []models.Notification{}
	s.persist()
}
