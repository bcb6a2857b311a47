package state

import (
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stock-ahora/truestock-api/internal/models"
)

// KV is the persistence port for dashboard-owned state. Consumers never talk
// to storage directly so tests can swap in MemoryKV.
type KV interface {
	// Load returns the stored value and whether the key existed at all.
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
	Delete(key string) error
}

// DatabaseKV stores values in the client_states table.
type DatabaseKV struct {
	db *gorm.DB
}

func NewDatabaseKV(db *gorm.DB) *DatabaseKV {
	return &DatabaseKV{db: db}
}

func (kv *DatabaseKV) Load(key string) ([]byte, bool, error) {
	var row models.ClientState
	if err := kv.db.First(&row, "`key` = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row.Value, true, nil
}

func (kv *DatabaseKV) Save(key string, value []byte) error {
	row := models.ClientState{Key: key, Value: value}
	return kv.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&row).Error
}

func (kv *DatabaseKV) Delete(key string) error {
	return kv.db.Delete(&models.ClientState{}, "`key` = ?", key).Error
}

// MemoryKV is an in-process port for tests and single-shot tooling.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string][]byte)}
}

func (kv *MemoryKV) Load(key string) ([]byte, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (kv *MemoryKV) Save(key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	kv.m[key] = v
	return nil
}

func (kv *MemoryKV) Delete(key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.m, key)
	return nil
}
