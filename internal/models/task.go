package models

import (
	"gorm.io/gorm"
	"time"
)

// Task statuses
const (
	StatusTodo = "todo"
	StatusDone = "done"
)

// Task represents an inbox item. Deleting a task only sets DeletedAt, so it
// can be restored from the trash.
type Task struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	ProfileID string     `gorm:"index;not null" json:"profile_id"`
	Title     string     `gorm:"not null" json:"title"`
	Project   string     `json:"project"`
	Status    string     `gorm:"default:todo" json:"status"` // todo, done
	Priority  int        `gorm:"default:0" json:"priority"`  // 0=no priority, 1=low, 2=medium, 3=high
	Due       *time.Time `json:"due"`
	DoneAt    *time.Time `json:"done_at"`
	Note      string     `json:"note"`

	// Relationships
	Tags []Tag `gorm:"many2many:task_tags;" json:"tags"`
}

// Tag labels tasks and notes
type Tag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`

	// Relationships
	Tasks []Task `gorm:"many2many:task_tags;" json:"-"`
	Notes []Note `gorm:"many2many:note_tags;" json:"-"`
}

// TaskTag is the join table for the many-to-many relationship
type TaskTag struct {
	TaskID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}
