package models

import (
	"strconv"
	"time"
)

// Kind names a collection that supports the trash.
type Kind string

const (
	KindTask        Kind = "task"
	KindNote        Kind = "note"
	KindTransaction Kind = "tx"
	KindHabit       Kind = "habit"
)

// Kinds lists every trashable collection.
var Kinds = []Kind{KindTask, KindNote, KindTransaction, KindHabit}

// TrashEntry describes one record for the trash views.
type TrashEntry struct {
	Kind      Kind      `json:"kind"`
	ID        uint      `json:"id"`
	Label     string    `json:"label"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (t *Task) TrashEntry() TrashEntry {
	return TrashEntry{Kind: KindTask, ID: t.ID, Label: t.Title, DeletedAt: t.DeletedAt.Time}
}

func (n *Note) TrashEntry() TrashEntry {
	return TrashEntry{Kind: KindNote, ID: n.ID, Label: n.Title, DeletedAt: n.DeletedAt.Time}
}

func (t *Transaction) TrashEntry() TrashEntry {
	label := t.Type + " " + strconv.FormatInt(t.Amount, 10)
	if t.Note != "" {
		label += " " + t.Note
	}
	return TrashEntry{Kind: KindTransaction, ID: t.ID, Label: label, DeletedAt: t.DeletedAt.Time}
}

func (h *Habit) TrashEntry() TrashEntry {
	return TrashEntry{Kind: KindHabit, ID: h.ID, Label: h.Name, DeletedAt: h.DeletedAt.Time}
}
