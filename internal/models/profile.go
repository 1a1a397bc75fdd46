package models

import "time"

// Profile is the gamification record of one user. Level is denormalized from XP.
type Profile struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	XP          int       `gorm:"not null;default:0" json:"xp"`
	Level       int       `gorm:"not null;default:1" json:"level"`
	LastUpdated time.Time `json:"last_updated"`
}
