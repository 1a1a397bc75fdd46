package models

import (
	"gorm.io/gorm"
	"time"
)

// Habit is a daily recurring checkbox.
type Habit struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	ProfileID string `gorm:"index;not null" json:"profile_id"`
	Name      string `gorm:"not null" json:"name"`

	Checks []HabitCheck `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE;" json:"checks"`
}

// HabitCheck marks a habit as done on one day.
type HabitCheck struct {
	HabitID   uint      `gorm:"primaryKey" json:"habit_id"`
	Day       string    `gorm:"primaryKey" json:"day"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}
