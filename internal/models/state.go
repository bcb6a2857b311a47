package models

import "time"

// ClientState is a persisted key-value row backing the dashboard state port
// (notification list, settings document, form drafts).
type ClientState struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     []byte    `gorm:"type:longblob" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
