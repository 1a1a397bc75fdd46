package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/lifeos/internal/models"
)

// HabitStatus is a habit with its state for a given day.
type HabitStatus struct {
	Habit  models.Habit
	Done   bool
	Streak int
}

// CreateHabit adds a new daily habit.
func (s *Store) CreateHabit(ctx context.Context, profileID, name string) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("habit name is required")
	}

	habit := models.Habit{ProfileID: profileID, Name: name}
	if err := s.db.WithContext(ctx).Create(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// ListHabits returns habits with their check state and streak as of day.
func (s *Store) ListHabits(ctx context.Context, profileID string, day time.Time) ([]HabitStatus, error) {
	var habits []models.Habit

	err := s.db.WithContext(ctx).
		Preload("Checks").
		Where("profile_id = ?", profileID).
		Order("id ASC").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}

	out := make([]HabitStatus, 0, len(habits))
	for _, h := range habits {
		days := make(map[string]bool, len(h.Checks))
		for _, c := range h.Checks {
			days[c.Day] = true
		}
		out = append(out, HabitStatus{
			Habit:  h,
			Done:   days[dayKey(day)],
			Streak: streak(days, day),
		})
	}
	return out, nil
}

// ToggleHabit flips the check for day and reports whether it is now done.
func (s *Store) ToggleHabit(ctx context.Context, profileID string, id uint, day time.Time) (bool, *models.Habit, error) {
	var habit models.Habit
	key := dayKey(day)
	done := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("profile_id = ?", profileID).First(&habit, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("habit #%d: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}

		res := tx.Where("habit_id = ? AND day = ?", id, key).Delete(&models.HabitCheck{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		done = true
		return tx.Create(&models.HabitCheck{HabitID: id, Day: key}).Error
	})
	if err != nil {
		return false, nil, err
	}
	return done, &habit, nil
}

// streak counts consecutive checked days ending at day, or at the day before
// when day itself is not checked yet.
func streak(days map[string]bool, day time.Time) int {
	cur := day
	if !days[dayKey(cur)] {
		cur = cur.AddDate(0, 0, -1)
	}

	n := 0
	for days[dayKey(cur)] {
		n++
		cur = cur.AddDate(0, 0, -1)
	}
	return n
}
