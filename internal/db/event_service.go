package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/balkashynov/lifeos/internal/models"
)

// Event types
const (
	EventTaskAdded        = "TASK_ADDED"
	EventTaskCompleted    = "TASK_COMPLETED"
	EventHabitDone        = "HABIT_DONE"
	EventNoteAdded        = "NOTE_ADDED"
	EventTransactionAdded = "TRANSACTION_ADDED"
)

// LogEvent appends to the profile's timeline. Failures are logged and
// otherwise dropped; an empty profile ID is ignored.
func (s *Store) LogEvent(ctx context.Context, profileID, eventType, message string, metadata map[string]any) {
	if profileID == "" {
		return
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	now := s.now()
	event := models.Event{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ProfileID: profileID,
		Type:      eventType,
		Message:   message,
		Metadata:  metadata,
		Day:       dayKey(now),
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		s.log.Warn("log event failed", "profile", profileID, "type", eventType, "error", err)
	}
}

// RecentEvents returns the newest events first.
func (s *Store) RecentEvents(ctx context.Context, profileID string, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 20
	}

	var events []models.Event
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
