package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/lifeos/internal/models"
)

// CreateNoteRequest holds the data needed to create a note
type CreateNoteRequest struct {
	Title   string
	Content string
	Tags    []string
	Pinned  bool
}

// CreateNote stores a note and links its tags.
func (s *Store) CreateNote(ctx context.Context, profileID string, req CreateNoteRequest) (*models.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("note title is required")
	}

	note := models.Note{
		ProfileID: profileID,
		Title:     title,
		Content:   req.Content,
		Pinned:    req.Pinned,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := findOrCreateTags(tx, req.Tags)
		if err != nil {
			return err
		}
		note.Tags = tags
		return tx.Create(&note).Error
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes returns live notes, pinned first and then newest. A non-empty
// tag limits the result to notes carrying it.
func (s *Store) ListNotes(ctx context.Context, profileID, tag string) ([]models.Note, error) {
	var notes []models.Note

	query := s.db.WithContext(ctx).Preload("Tags").Where("profile_id = ?", profileID)
	if tag != "" {
		query = query.Where("id IN (?)",
			s.db.Table("note_tags").
				Select("note_tags.note_id").
				Joins("JOIN tags ON tags.id = note_tags.tag_id").
				Where("tags.name = ?", tag))
	}

	if err := query.Order("pinned DESC, id DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
