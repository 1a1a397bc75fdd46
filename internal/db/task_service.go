package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/lifeos/internal/models"
)

// ErrAlreadyDone is returned when completing a task twice.
var ErrAlreadyDone = errors.New("task is already completed")

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Title    string
	Project  string
	Tags     []string
	Priority string // can be "low/medium/high" or "1/2/3" or empty for no priority
	Note     string
	DueDate  *time.Time
}

// TaskQuery filters ListTasks.
type TaskQuery struct {
	Status  string
	Project string
}

// CreateTask creates a new task with tags
func (s *Store) CreateTask(ctx context.Context, profileID string, req CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}

	task := models.Task{
		ProfileID: profileID,
		Title:     title,
		Project:   req.Project,
		Status:    models.StatusTodo,
		Priority:  parsePriority(req.Priority),
		Note:      req.Note,
		Due:       req.DueDate,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Process tags
		if len(req.Tags) > 0 {
			tags, err := findOrCreateTags(tx, req.Tags)
			if err != nil {
				return err
			}
			task.Tags = tags
		}
		return tx.Create(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// parsePriority converts priority string to int
func parsePriority(priority string) int {
	priority = strings.ToLower(strings.TrimSpace(priority))
	switch priority {
	case "low", "1":
		return 1
	case "medium", "med", "2":
		return 2
	case "high", "3":
		return 3
	default:
		return 0 // empty or invalid priority means no priority
	}
}

// findOrCreateTags finds existing tags or creates new ones
func findOrCreateTags(tx *gorm.DB, tagNames []string) ([]models.Tag, error) {
	var tags []models.Tag

	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		tag := models.Tag{Name: name}
		if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// ListTasks returns live (not deleted) tasks, open ones first.
func (s *Store) ListTasks(ctx context.Context, profileID string, q TaskQuery) ([]models.Task, error) {
	var tasks []models.Task

	query := s.db.WithContext(ctx).Preload("Tags").Where("profile_id = ?", profileID)
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Project != "" {
		query = query.Where("project = ?", q.Project)
	}

	if err := query.Order("status DESC, priority DESC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a live task by ID
func (s *Store) GetTask(ctx context.Context, profileID string, id uint) (*models.Task, error) {
	var task models.Task

	err := s.db.WithContext(ctx).Preload("Tags").
		Where("profile_id = ?", profileID).
		First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("task #%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// MarkTaskDone marks a task as completed. The status check and the write are
// one statement, so of two concurrent calls only one succeeds.
func (s *Store) MarkTaskDone(ctx context.Context, profileID string, id uint) (*models.Task, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND profile_id = ? AND status <> ?", id, profileID, models.StatusDone).
		Updates(map[string]any{"status": models.StatusDone, "done_at": s.now()})
	if res.Error != nil {
		return nil, res.Error
	}

	task, err := s.GetTask(ctx, profileID, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("task #%d: %w", id, ErrAlreadyDone)
	}

	return task, nil
}

// MarkTaskUndone moves a completed task back to todo. XP already granted stays.
func (s *Store) MarkTaskUndone(ctx context.Context, profileID string, id uint) (*models.Task, error) {
	task, err := s.GetTask(ctx, profileID, id)
	if err != nil {
		return nil, err
	}

	if task.Status != models.StatusDone {
		return nil, fmt.Errorf("task #%d is not completed", id)
	}

	task.Status = models.StatusTodo
	task.DoneAt = nil

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}
