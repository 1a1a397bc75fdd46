package localstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/balkashynov/lifeos/internal/timer"
)

func openTemp(t *testing.T) (*TimerStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "timer.db")
	s, err := Open(path, 25)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestLoadDefaults(t *testing.T) {
	s, _ := openTemp(t)

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, timer.State{DurationMinutes: 25, RemainingSeconds: 1500}, st)
}

func TestSaveLoadRunning(t *testing.T) {
	s, _ := openTemp(t)
	deadline := time.UnixMilli(time.Now().Add(10 * time.Minute).UnixMilli())

	require.NoError(t, s.Save(timer.State{
		DurationMinutes:  40,
		Running:          true,
		RemainingSeconds: 2400,
		Deadline:         deadline,
	}))

	st, err := s.Load()
	require.NoError(t, err)
	assert.True(t, st.Running)
	assert.Equal(t, 40, st.DurationMinutes)
	assert.True(t, deadline.Equal(st.Deadline))
}

func TestSaveClearsDeadline(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, s.Save(timer.State{DurationMinutes: 5, Running: true, Deadline: time.Now()}))

	require.NoError(t, s.Save(timer.State{DurationMinutes: 5, RemainingSeconds: 120}))

	st, err := s.Load()
	require.NoError(t, err)
	assert.False(t, st.Running)
	assert.True(t, st.Deadline.IsZero())
	assert.Equal(t, 120, st.RemainingSeconds)

	require.NoError(t, s.db.View(func(tx *bbolt.Tx) error {
		assert.Nil(t, tx.Bucket([]byte(bucketTimer)).Get([]byte(KeyDeadline)))
		return nil
	}))
}

func TestStateSurvivesReopen(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.Save(timer.State{DurationMinutes: 15, RemainingSeconds: 321}))
	require.NoError(t, s.Close())

	reopened, err := Open(path, 25)
	require.NoError(t, err)
	defer reopened.Close()

	st, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, timer.State{DurationMinutes: 15, RemainingSeconds: 321}, st)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketTimer))
		require.NoError(t, b.Put([]byte(KeyDuration), []byte("abc")))
		require.NoError(t, b.Put([]byte(KeyRemaining), []byte("-30")))
		return b.Put([]byte(KeyRunning), []byte("yes"))
	}))

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 25, st.DurationMinutes)
	assert.False(t, st.Running)
	assert.Equal(t, -30, st.RemainingSeconds)
	assert.Equal(t, 0, st.Normalize(25).RemainingSeconds)
}
