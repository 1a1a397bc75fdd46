package db

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/balkashynov/lifeos/internal/models"
)

// ErrUnknownKind is returned for a collection without trash support.
var ErrUnknownKind = errors.New("unknown item kind")

type trashable interface {
	TrashEntry() models.TrashEntry
}

// ParseKind maps a command-line word to a collection.
func ParseKind(s string) (models.Kind, error) {
	switch s {
	case "task", "tasks":
		return models.KindTask, nil
	case "note", "notes":
		return models.KindNote, nil
	case "tx", "transaction", "transactions":
		return models.KindTransaction, nil
	case "habit", "habits":
		return models.KindHabit, nil
	}
	return "", fmt.Errorf("%w %q (use task, note, tx or habit)", ErrUnknownKind, s)
}

// record returns an empty row for kind and the associations purging it must
// remove with it.
func record(kind models.Kind) (trashable, []string, error) {
	switch kind {
	case models.KindTask:
		return &models.Task{}, []string{"Tags"}, nil
	case models.KindNote:
		return &models.Note{}, []string{"Tags"}, nil
	case models.KindTransaction:
		return &models.Transaction{}, nil, nil
	case models.KindHabit:
		return &models.Habit{}, []string{"Checks"}, nil
	}
	return nil, nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
}

// DeleteItem moves a record to the trash.
func (s *Store) DeleteItem(ctx context.Context, profileID string, kind models.Kind, id uint) (models.TrashEntry, error) {
	rec, _, err := record(kind)
	if err != nil {
		return models.TrashEntry{}, err
	}

	db := s.db.WithContext(ctx)
	err = db.Where("profile_id = ?", profileID).First(rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TrashEntry{}, fmt.Errorf("%s #%d: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return models.TrashEntry{}, err
	}

	if err := db.Delete(rec).Error; err != nil {
		return models.TrashEntry{}, err
	}
	return rec.TrashEntry(), nil
}

// RestoreItem takes a record out of the trash.
func (s *Store) RestoreItem(ctx context.Context, profileID string, kind models.Kind, id uint) (models.TrashEntry, error) {
	rec, _, err := record(kind)
	if err != nil {
		return models.TrashEntry{}, err
	}

	db := s.db.WithContext(ctx)
	res := db.Unscoped().Model(rec).
		Where("id = ? AND profile_id = ? AND deleted_at IS NOT NULL", id, profileID).
		Update("deleted_at", nil)
	if res.Error != nil {
		return models.TrashEntry{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.TrashEntry{}, fmt.Errorf("%s #%d in trash: %w", kind, id, ErrNotFound)
	}

	if err := db.First(rec, id).Error; err != nil {
		return models.TrashEntry{}, err
	}
	return rec.TrashEntry(), nil
}

// PurgeItem permanently removes a trashed record and its links.
func (s *Store) PurgeItem(ctx context.Context, profileID string, kind models.Kind, id uint) (models.TrashEntry, error) {
	rec, assoc, err := record(kind)
	if err != nil {
		return models.TrashEntry{}, err
	}

	db := s.db.WithContext(ctx)
	err = db.Unscoped().Where("profile_id = ? AND deleted_at IS NOT NULL", profileID).First(rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TrashEntry{}, fmt.Errorf("%s #%d in trash: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return models.TrashEntry{}, err
	}

	del := db.Unscoped()
	if len(assoc) > 0 {
		del = del.Select(assoc)
	}
	if err := del.Delete(rec).Error; err != nil {
		return models.TrashEntry{}, err
	}
	return rec.TrashEntry(), nil
}

// Trash lists soft-deleted records of every kind, most recently deleted first.
func (s *Store) Trash(ctx context.Context, profileID string) ([]models.TrashEntry, error) {
	db := s.db.WithContext(ctx)

	var out []models.TrashEntry
	for _, collect := range []func(*gorm.DB, string) ([]models.TrashEntry, error){
		trashed[models.Task],
		trashed[models.Note],
		trashed[models.Transaction],
		trashed[models.Habit],
	} {
		entries, err := collect(db, profileID)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}

	slices.SortStableFunc(out, func(a, b models.TrashEntry) int {
		return b.DeletedAt.Compare(a.DeletedAt)
	})
	return out, nil
}

func trashed[T any, PT interface {
	*T
	trashable
}](db *gorm.DB, profileID string) ([]models.TrashEntry, error) {
	var rows []T
	err := db.Unscoped().
		Where("profile_id = ? AND deleted_at IS NOT NULL", profileID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]models.TrashEntry, 0, len(rows))
	for i := range rows {
		out = append(out, PT(&rows[i]).TrashEntry())
	}
	return out, nil
}
