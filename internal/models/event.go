package models

import "time"

// Event is an append-only timeline entry.
type Event struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	ProfileID string         `gorm:"index;not null" json:"profile_id"`
	Type      string         `gorm:"index;not null" json:"type"`
	Message   string         `json:"message"`
	Metadata  map[string]any `gorm:"serializer:json" json:"metadata"`
	Day       string         `gorm:"index" json:"day"` // YYYY-MM-DD, local time
}
