package db

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/lifeos/internal/models"
	"github.com/balkashynov/lifeos/internal/xp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "lifeos.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddXPCreatesAndIncrements(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	before, after, err := s.AddXP(ctx, "p1", 40, now)
	require.NoError(t, err)
	assert.Equal(t, 0, before.XP)
	assert.Equal(t, 1, before.Level)
	assert.Equal(t, 40, after.XP)
	assert.Equal(t, 1, after.Level)

	before, after, err = s.AddXP(ctx, "p1", 65, now)
	require.NoError(t, err)
	assert.Equal(t, 40, before.XP)
	assert.Equal(t, 105, after.XP)
	assert.Equal(t, 2, after.Level)

	p, err := s.Profile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 105, p.XP)
	assert.Equal(t, 2, p.Level)
}

func TestProfileDefaultsWhenAbsent(t *testing.T) {
	s := openTestStore(t)

	p, err := s.Profile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, xp.Profile{ID: "nobody", XP: 0, Level: 1}, p)
}

func TestAccumulatorScenarioOnSQLite(t *testing.T) {
	s := openTestStore(t)
	acc := xp.NewAccumulator(s, nil)
	ctx := context.Background()

	res, err := acc.Grant(ctx, "p", 99)
	require.NoError(t, err)
	assert.Equal(t, xp.Result{NewXP: 99, NewLevel: 1}, res)

	res, err = acc.Grant(ctx, "p", 1)
	require.NoError(t, err)
	assert.Equal(t, xp.Result{NewXP: 100, NewLevel: 2, LeveledUp: true}, res)

	res, err = acc.Grant(ctx, "p", 250)
	require.NoError(t, err)
	assert.Equal(t, xp.Result{NewXP: 350, NewLevel: 4, LeveledUp: true}, res)
}

func TestAddXPConcurrentGrantsAreNotLost(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.AddXP(ctx, "p", 10, time.Now())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, err := s.Profile(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, 100, p.XP)
	assert.Equal(t, 2, p.Level)
}

func TestLogEvent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.LogEvent(ctx, "p", EventTaskCompleted, "first", map[string]any{"task_id": 1})
	s.now = func() time.Time { return time.Now().Add(time.Second) }
	s.LogEvent(ctx, "p", EventHabitDone, "second", nil)
	s.LogEvent(ctx, "", EventHabitDone, "dropped", nil)

	events, err := s.RecentEvents(ctx, "p", 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "second", events[0].Message)
	assert.Equal(t, EventTaskCompleted, events[1].Type)
	assert.EqualValues(t, 1, events[1].Metadata["task_id"])
	assert.NotEmpty(t, events[1].ID)
	assert.Equal(t, dayKey(events[1].CreatedAt), events[1].Day)
}

func TestTaskLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, "p", CreateTaskRequest{
		Title:    "  Write report  ",
		Project:  "work",
		Tags:     []string{"urgent", " ", "writing"},
		Priority: "high",
	})
	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, 3, task.Priority)
	assert.Len(t, task.Tags, 2)

	_, err = s.CreateTask(ctx, "p", CreateTaskRequest{Title: "Other", Tags: []string{"urgent"}})
	require.NoError(t, err)

	done, err := s.MarkTaskDone(ctx, "p", task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, done.Status)
	require.NotNil(t, done.DoneAt)

	_, err = s.MarkTaskDone(ctx, "p", task.ID)
	require.ErrorIs(t, err, ErrAlreadyDone)

	undone, err := s.MarkTaskUndone(ctx, "p", task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, undone.Status)
	assert.Nil(t, undone.DoneAt)

	tasks, err := s.ListTasks(ctx, "p", TaskQuery{Project: "work"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Len(t, tasks[0].Tags, 2)

	_, err = s.GetTask(ctx, "someone-else", task.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMarkTaskDoneOnlyOnceUnderConcurrency(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, "p", CreateTaskRequest{Title: "Race"})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		already   int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.MarkTaskDone(ctx, "p", task.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrAlreadyDone):
				already++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 9, already)
}

func TestMarkTaskDoneMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.MarkTaskDone(context.Background(), "p", 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSoftDeleteRestorePurge(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	task, err := s.CreateTask(ctx, "p", CreateTaskRequest{Title: "Temp", Tags: []string{"x"}})
	require.NoError(t, err)

	item, err := s.DeleteItem(ctx, "p", models.KindTask, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Temp", item.Label)

	live, err := s.ListTasks(ctx, "p", TaskQuery{})
	require.NoError(t, err)
	assert.Empty(t, live)

	trash, err := s.Trash(ctx, "p")
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, models.KindTask, trash[0].Kind)

	restored, err := s.RestoreItem(ctx, "p", models.KindTask, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Temp", restored.Label)

	_, err = s.RestoreItem(ctx, "p", models.KindTask, task.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.PurgeItem(ctx, "p", models.KindTask, task.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.DeleteItem(ctx, "p", models.KindTask, task.ID)
	require.NoError(t, err)
	_, err = s.PurgeItem(ctx, "p", models.KindTask, task.ID)
	require.NoError(t, err)

	trash, err = s.Trash(ctx, "p")
	require.NoError(t, err)
	assert.Empty(t, trash)

	var links int64
	require.NoError(t, s.db.Model(&models.TaskTag{}).Where("task_id = ?", task.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestTrashCoversEveryKind(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	day := time.Date(2026, 5, 10, 12, 0, 0, 0, time.Local)

	task, err := s.CreateTask(ctx, "p", CreateTaskRequest{Title: "Task"})
	require.NoError(t, err)
	note, err := s.CreateNote(ctx, "p", CreateNoteRequest{Title: "Note", Tags: []string{"n"}})
	require.NoError(t, err)
	tx, err := s.CreateTransaction(ctx, "p", CreateTransactionRequest{Type: models.TxExpense, Amount: 500, Note: "coffee"})
	require.NoError(t, err)
	habit, err := s.CreateHabit(ctx, "p", "Habit")
	require.NoError(t, err)
	_, _, err = s.ToggleHabit(ctx, "p", habit.ID, day)
	require.NoError(t, err)

	targets := map[models.Kind]uint{
		models.KindTask:        task.ID,
		models.KindNote:        note.ID,
		models.KindTransaction: tx.ID,
		models.KindHabit:       habit.ID,
	}
	for _, kind := range models.Kinds {
		_, err := s.DeleteItem(ctx, "p", kind, targets[kind])
		require.NoError(t, err, kind)
	}

	trash, err := s.Trash(ctx, "p")
	require.NoError(t, err)
	require.Len(t, trash, 4)
	labels := map[models.Kind]string{}
	for _, e := range trash {
		labels[e.Kind] = e.Label
		assert.False(t, e.DeletedAt.IsZero(), e.Kind)
	}
	assert.Equal(t, "expense 500 coffee", labels[models.KindTransaction])
	assert.Equal(t, "Habit", labels[models.KindHabit])

	habits, err := s.ListHabits(ctx, "p", day)
	require.NoError(t, err)
	assert.Empty(t, habits)
	sum, err := s.Balance(ctx, "p")
	require.NoError(t, err)
	assert.Zero(t, sum.Expense)

	_, err = s.RestoreItem(ctx, "p", models.KindHabit, habit.ID)
	require.NoError(t, err)
	habits, err = s.ListHabits(ctx, "p", day)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.True(t, habits[0].Done)

	_, err = s.DeleteItem(ctx, "p", models.KindHabit, habit.ID)
	require.NoError(t, err)
	for _, kind := range models.Kinds {
		_, err := s.PurgeItem(ctx, "p", kind, targets[kind])
		require.NoError(t, err, kind)
	}

	trash, err = s.Trash(ctx, "p")
	require.NoError(t, err)
	assert.Empty(t, trash)

	var checks, noteLinks int64
	require.NoError(t, s.db.Model(&models.HabitCheck{}).Where("habit_id = ?", habit.ID).Count(&checks).Error)
	require.NoError(t, s.db.Model(&models.NoteTag{}).Where("note_id = ?", note.ID).Count(&noteLinks).Error)
	assert.Zero(t, checks)
	assert.Zero(t, noteLinks)
}

func TestTrashIsPerProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	note, err := s.CreateNote(ctx, "p", CreateNoteRequest{Title: "Mine"})
	require.NoError(t, err)

	_, err = s.DeleteItem(ctx, "other", models.KindNote, note.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.DeleteItem(ctx, "p", models.KindNote, note.ID)
	require.NoError(t, err)
	_, err = s.RestoreItem(ctx, "other", models.KindNote, note.ID)
	require.ErrorIs(t, err, ErrNotFound)

	trash, err := s.Trash(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, trash)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]models.Kind{
		"task": models.KindTask, "notes": models.KindNote, "tx": models.KindTransaction, "habit": models.KindHabit,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("goal")
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestNotes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.CreateNote(ctx, "p", CreateNoteRequest{Title: "  "})
	require.Error(t, err)

	first, err := s.CreateNote(ctx, "p", CreateNoteRequest{Title: "Groceries", Tags: []string{"home"}})
	require.NoError(t, err)
	_, err = s.CreateNote(ctx, "p", CreateNoteRequest{Title: "Wifi", Content: "hunter2", Pinned: true})
	require.NoError(t, err)
	_, err = s.CreateNote(ctx, "p", CreateNoteRequest{Title: "Garden", Tags: []string{"home", "ideas"}})
	require.NoError(t, err)
	// tags are shared with tasks
	_, err = s.CreateTask(ctx, "p", CreateTaskRequest{Title: "Mow", Tags: []string{"home"}})
	require.NoError(t, err)

	notes, err := s.ListNotes(ctx, "p", "")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "Wifi", notes[0].Title)
	assert.Equal(t, "Garden", notes[1].Title)
	assert.Len(t, notes[1].Tags, 2)

	home, err := s.ListNotes(ctx, "p", "home")
	require.NoError(t, err)
	require.Len(t, home, 2)
	assert.Equal(t, first.ID, home[1].ID)

	none, err := s.ListNotes(ctx, "someone-else", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTransactionsAndBalance(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sum, err := s.Balance(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)

	_, err = s.CreateTransaction(ctx, "p", CreateTransactionRequest{Type: "gift", Amount: 5})
	require.ErrorIs(t, err, ErrInvalidTransaction)
	_, err = s.CreateTransaction(ctx, "p", CreateTransactionRequest{Type: models.TxIncome, Amount: 0})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	salary, err := s.CreateTransaction(ctx, "p", CreateTransactionRequest{Type: "Income", Amount: 3000, Category: "Work", Note: "salary"})
	require.NoError(t, err)
	assert.Equal(t, models.TxIncome, salary.Type)
	assert.Equal(t, "work", salary.Category)
	assert.Equal(t, dayKey(salary.CreatedAt), salary.Day)

	lunch, err := s.CreateTransaction(ctx, "p", CreateTransactionRequest{Type: models.TxExpense, Amount: 250})
	require.NoError(t, err)
	assert.Equal(t, "other", lunch.Category)
	assert.EqualValues(t, -250, lunch.Signed())

	_, err = s.CreateTransaction(ctx, "other", CreateTransactionRequest{Type: models.TxExpense, Amount: 99})
	require.NoError(t, err)

	sum, err = s.Balance(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, Summary{Income: 3000, Expense: 250, Balance: 2750}, sum)

	txs, err := s.ListTransactions(ctx, "p", 1)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, lunch.ID, txs[0].ID)

	txs, err = s.ListTransactions(ctx, "p", 0)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestHabitToggleAndStreak(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	today := time.Date(2026, 5, 10, 12, 0, 0, 0, time.Local)

	habit, err := s.CreateHabit(ctx, "p", "Read")
	require.NoError(t, err)

	for _, d := range []int{-3, -2, -1} {
		done, _, err := s.ToggleHabit(ctx, "p", habit.ID, today.AddDate(0, 0, d))
		require.NoError(t, err)
		require.True(t, done)
	}

	list, err := s.ListHabits(ctx, "p", today)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Done)
	assert.Equal(t, 3, list[0].Streak)

	done, h, err := s.ToggleHabit(ctx, "p", habit.ID, today)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "Read", h.Name)

	list, err = s.ListHabits(ctx, "p", today)
	require.NoError(t, err)
	assert.True(t, list[0].Done)
	assert.Equal(t, 4, list[0].Streak)

	done, _, err = s.ToggleHabit(ctx, "p", habit.ID, today)
	require.NoError(t, err)
	assert.False(t, done)

	_, _, err = s.ToggleHabit(ctx, "p", 999, today)
	require.ErrorIs(t, err, ErrNotFound)
}
