package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/lifeos/internal/models"
	"github.com/balkashynov/lifeos/internal/xp"
)

// AddXP increments a profile's XP inside one transaction. The increment and
// the level are computed by the database from the current row, so concurrent
// grants from several processes do not overwrite each other.
func (s *Store) AddXP(ctx context.Context, profileID string, amount int, now time.Time) (before, after xp.Profile, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := models.Profile{ID: profileID, XP: 0, Level: 1, LastUpdated: now}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		var row models.Profile
		if err := tx.First(&row, "id = ?", profileID).Error; err != nil {
			return err
		}
		before = toXPProfile(row)

		if err := tx.Model(&models.Profile{}).
			Where("id = ?", profileID).
			Updates(map[string]any{
				"xp":           gorm.Expr("xp + ?", amount),
				"level":        gorm.Expr("(xp + ?) / ? + 1", amount, xp.PointsPerLevel),
				"last_updated": now,
			}).Error; err != nil {
			return err
		}

		if err := tx.First(&row, "id = ?", profileID).Error; err != nil {
			return err
		}
		after = toXPProfile(row)
		return nil
	})
	if err != nil {
		return xp.Profile{}, xp.Profile{}, err
	}
	return before, after, nil
}

// Profile returns the stored profile, or a fresh level-1 profile if none exists.
func (s *Store) Profile(ctx context.Context, profileID string) (xp.Profile, error) {
	var row models.Profile
	err := s.db.WithContext(ctx).First(&row, "id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return xp.Profile{ID: profileID, XP: 0, Level: 1}, nil
	}
	if err != nil {
		return xp.Profile{}, err
	}
	return toXPProfile(row), nil
}

func toXPProfile(row models.Profile) xp.Profile {
	return xp.Profile{
		ID:          row.ID,
		XP:          row.XP,
		Level:       row.Level,
		LastUpdated: row.LastUpdated,
	}
}
