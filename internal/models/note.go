package models

import (
	"gorm.io/gorm"
	"time"
)

// Note is a free-form text entry. Notes share the tag table with tasks.
type Note struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	ProfileID string `gorm:"index;not null" json:"profile_id"`
	Title     string `gorm:"not null" json:"title"`
	Content   string `json:"content"`
	Pinned    bool   `gorm:"default:false" json:"pinned"`

	Tags []Tag `gorm:"many2many:note_tags;" json:"tags"`
}

// NoteTag is the join table between notes and tags
type NoteTag struct {
	NoteID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}
