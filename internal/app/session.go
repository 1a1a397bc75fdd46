// Package app wires the stores, the timer engine and the XP accumulator into
// one session object owned by a single CLI invocation or TUI run.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/balkashynov/lifeos/internal/config"
	"github.com/balkashynov/lifeos/internal/db"
	"github.com/balkashynov/lifeos/internal/localstore"
	"github.com/balkashynov/lifeos/internal/models"
	"github.com/balkashynov/lifeos/internal/timer"
	"github.com/balkashynov/lifeos/internal/xp"
)

// XP rewards per action.
const (
	XPTaskDone    = 10
	XPHabitDone   = 5
	XPNoteAdded   = 5
	XPTransaction = 2
)

// Sinks are the presentation collaborators handed to the timer engine.
type Sinks struct {
	Notifier timer.Notifier
	Player   timer.Player
	Display  timer.Display
}

// Session is created at the start of a command and closed at its end.
type Session struct {
	Config    config.Config
	Logger    *slog.Logger
	Store     *db.Store
	XP        *xp.Accumulator
	ProfileID string

	local  *localstore.TimerStore
	engine *timer.Engine
	now    func() time.Time
}

// Open connects the document store. The timer store is opened lazily by
// Timer because its file lock is exclusive.
func Open(cfg config.Config, logger *slog.Logger) (*Session, error) {
	store, err := db.Open(cfg.DatabasePath(), logger)
	if err != nil {
		return nil, err
	}

	return &Session{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		XP:        xp.NewAccumulator(store, logger),
		ProfileID: cfg.Profile,
		now:       time.Now,
	}, nil
}

// Timer returns the session's timer engine, creating it on first use.
// Sinks and options only apply to that first call.
func (s *Session) Timer(sinks Sinks, opts ...timer.Option) (*timer.Engine, error) {
	if s.engine != nil {
		return s.engine, nil
	}

	local, err := localstore.Open(s.Config.TimerPath(), s.Config.DefaultMinutes)
	if err != nil {
		return nil, err
	}

	base := []timer.Option{
		timer.WithLogger(s.Logger),
		timer.WithProfile(s.ProfileID),
		timer.WithDefaultMinutes(s.Config.DefaultMinutes),
		timer.WithEventLogger(s.Store),
	}
	if sinks.Notifier != nil {
		base = append(base, timer.WithNotifier(sinks.Notifier))
	}
	if sinks.Player != nil {
		base = append(base, timer.WithPlayer(sinks.Player))
	}
	if sinks.Display != nil {
		base = append(base, timer.WithDisplay(sinks.Display))
	}

	engine, err := timer.New(local, append(base, opts...)...)
	if err != nil {
		_ = local.Close()
		return nil, err
	}

	s.local = local
	s.engine = engine
	return engine, nil
}

// Close stops the timer loop and releases both stores.
func (s *Session) Close() error {
	var errs []error
	if s.engine != nil {
		s.engine.Close()
	}
	if s.local != nil {
		errs = append(errs, s.local.Close())
	}
	errs = append(errs, s.Store.Close())
	return errors.Join(errs...)
}

// AddTask creates a task and records it on the timeline. Adding earns no XP.
func (s *Session) AddTask(ctx context.Context, req db.CreateTaskRequest) (*models.Task, error) {
	task, err := s.Store.CreateTask(ctx, s.ProfileID, req)
	if err != nil {
		return nil, err
	}

	s.Store.LogEvent(ctx, s.ProfileID, db.EventTaskAdded,
		"Task: "+task.Title,
		map[string]any{"task_id": task.ID})
	return task, nil
}

// TaskResult is the outcome of completing a task.
type TaskResult struct {
	Task *models.Task
	XP   xp.Result
}

// CompleteTask marks a task done, logs it and grants XP. When only the XP
// grant fails the task stays done and the error says so.
func (s *Session) CompleteTask(ctx context.Context, id uint) (TaskResult, error) {
	task, err := s.Store.MarkTaskDone(ctx, s.ProfileID, id)
	if err != nil {
		return TaskResult{}, err
	}

	s.Store.LogEvent(ctx, s.ProfileID, db.EventTaskCompleted,
		fmt.Sprintf("Task completed (+%d XP)", XPTaskDone),
		map[string]any{"task_id": task.ID, "title": task.Title})

	res, err := s.XP.Grant(ctx, s.ProfileID, XPTaskDone)
	if err != nil {
		return TaskResult{Task: task}, fmt.Errorf("task #%d completed but xp was not recorded: %w", task.ID, err)
	}
	return TaskResult{Task: task, XP: res}, nil
}

// HabitResult is the outcome of toggling a habit for today. XP is nil when
// the habit was unchecked.
type HabitResult struct {
	Habit *models.Habit
	Done  bool
	XP    *xp.Result
}

// ToggleHabit checks or unchecks a habit for today. Checking grants XP.
func (s *Session) ToggleHabit(ctx context.Context, id uint) (HabitResult, error) {
	done, habit, err := s.Store.ToggleHabit(ctx, s.ProfileID, id, s.now())
	if err != nil {
		return HabitResult{}, err
	}
	out := HabitResult{Habit: habit, Done: done}
	if !done {
		return out, nil
	}

	s.Store.LogEvent(ctx, s.ProfileID, db.EventHabitDone,
		fmt.Sprintf("Habit: %s (+%d XP)", habit.Name, XPHabitDone),
		map[string]any{"habit_id": habit.ID})

	res, err := s.XP.Grant(ctx, s.ProfileID, XPHabitDone)
	if err != nil {
		return out, fmt.Errorf("habit #%d checked but xp was not recorded: %w", habit.ID, err)
	}
	out.XP = &res
	return out, nil
}

// NoteResult is the outcome of adding a note.
type NoteResult struct {
	Note *models.Note
	XP   xp.Result
}

// AddNote stores a note, logs it and grants XP.
func (s *Session) AddNote(ctx context.Context, req db.CreateNoteRequest) (NoteResult, error) {
	note, err := s.Store.CreateNote(ctx, s.ProfileID, req)
	if err != nil {
		return NoteResult{}, err
	}

	s.Store.LogEvent(ctx, s.ProfileID, db.EventNoteAdded,
		"Note: "+note.Title,
		map[string]any{"note_id": note.ID})

	res, err := s.XP.Grant(ctx, s.ProfileID, XPNoteAdded)
	if err != nil {
		return NoteResult{Note: note}, fmt.Errorf("note #%d saved but xp was not recorded: %w", note.ID, err)
	}
	return NoteResult{Note: note, XP: res}, nil
}

// TransactionResult is the outcome of recording a transaction.
type TransactionResult struct {
	Transaction *models.Transaction
	XP          xp.Result
}

// AddTransaction records an income or expense, logs it and grants XP.
func (s *Session) AddTransaction(ctx context.Context, req db.CreateTransactionRequest) (TransactionResult, error) {
	t, err := s.Store.CreateTransaction(ctx, s.ProfileID, req)
	if err != nil {
		return TransactionResult{}, err
	}

	s.Store.LogEvent(ctx, s.ProfileID, db.EventTransactionAdded,
		fmt.Sprintf("%s: %s", t.Type, transactionLabel(t)),
		map[string]any{"transaction_id": t.ID, "type": t.Type, "amount": t.Amount, "category": t.Category})

	res, err := s.XP.Grant(ctx, s.ProfileID, XPTransaction)
	if err != nil {
		return TransactionResult{Transaction: t}, fmt.Errorf("transaction #%d saved but xp was not recorded: %w", t.ID, err)
	}
	return TransactionResult{Transaction: t, XP: res}, nil
}

func transactionLabel(t *models.Transaction) string {
	if t.Note != "" {
		return t.Note
	}
	return t.Category
}

// Profile returns the session profile's XP record.
func (s *Session) Profile(ctx context.Context) (xp.Profile, error) {
	return s.XP.Profile(ctx, s.ProfileID)
}
