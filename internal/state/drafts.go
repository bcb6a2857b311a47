package state

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DraftStore persists form drafts under caller-supplied keys. Writes are
// debounced so a burst of keystroke-level updates lands as one storage write;
// Close flushes whatever is still pending so no draft is lost on shutdown.
type DraftStore struct {
	mu       sync.Mutex
	kv       KV
	log      *zap.Logger
	pending  map[string][]byte
	debounce *Debouncer
}

func NewDraftStore(kv KV, delay time.Duration, log *zap.Logger) *DraftStore {
	s := &DraftStore{
		kv:      kv,
		log:     log,
		pending: make(map[string][]byte),
	}
	s.debounce = NewDebouncer(delay, s.flushPending)
	return s
}

// Get returns the draft for key, preferring a pending unflushed write.
func (s *DraftStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	if v, ok := s.pending[key]; ok {
		out := make([]byte, len(v))
		copy(out, v)
		s.mu.Unlock()
		return out, true, nil
	}
	s.mu.Unlock()
	return s.kv.Load(key)
}

// Put records the draft and schedules a debounced write.
func (s *DraftStore) Put(key string, value []byte) {
	s.mu.Lock()
	v := make([]byte, len(value))
	copy(v, value)
	s.pending[key] = v
	s.mu.Unlock()
	s.debounce.Trigger()
}

func (s *DraftStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.pending, key)
	s.mu.Unlock()
	return s.kv.Delete(key)
}

func (s *DraftStore) flushPending() {
	s.mu.Lock()
	batch := s.pending
	s.pending = make(map[string][]byte)
	s.mu.Unlock()

	for key, value := range batch {
		if err := s.kv.Save(key, value); err != nil {
			s.log.Error("failed to persist draft", zap.String("key", key), zap.Error(err))
		}
	}
}

// Close flushes pending drafts and stops the debounce timer.
func (s *DraftStore) Close() {
	s.debounce.Flush()
	s.debounce.Stop()
}
