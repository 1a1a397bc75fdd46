package db

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/lifeos/internal/models"
)

// ErrNotFound is returned when a record does not exist for the profile.
var ErrNotFound = errors.New("not found")

// Store is the per-profile document store.
type Store struct {
	db  *gorm.DB
	log *slog.Logger
	now func() time.Time
}

// Open sets up the database connection and runs migrations
func Open(path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lifeos directory: %w", err)
	}

	// Wait on a locked database instead of failing right away
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: conn, log: log, now: time.Now}

	if err := s.migrate(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// migrate creates/updates the database schema
func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&models.Profile{},
		&models.Event{},
		&models.Task{},
		&models.Tag{},
		&models.TaskTag{},
		&models.Note{},
		&models.NoteTag{},
		&models.Transaction{},
		&models.Habit{},
		&models.HabitCheck{},
	)
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dayKey formats t as the calendar day used for habit checks and events.
func dayKey(t time.Time) string {
	return t.Local().Format(time.DateOnly)
}
