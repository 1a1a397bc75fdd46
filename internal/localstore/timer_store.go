// Package localstore keeps device-local timer state in a bbolt file.
package localstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.etcd.io/bbolt"

	"github.com/balkashynov/lifeos/internal/timer"
)

const bucketTimer = "timer"

// Keys inside the timer bucket. Values are decimal strings; the deadline is
// unix milliseconds. An absent key means "not set".
const (
	KeyDuration  = "duration"
	KeyRunning   = "running-flag"
	KeyDeadline  = "deadline-timestamp"
	KeyRemaining = "remaining-seconds"
)

// TimerStore implements timer.Store on top of bbolt.
type TimerStore struct {
	db             *bbolt.DB
	defaultMinutes int
}

// Open opens (creating if needed) the bbolt file at path.
func Open(path string, defaultMinutes int) (*TimerStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open timer state %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketTimer))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	if defaultMinutes <= 0 {
		defaultMinutes = timer.DefaultMinutes
	}
	return &TimerStore{db: db, defaultMinutes: defaultMinutes}, nil
}

// Load reads the timer state. Missing or unparsable values fall back to
// defaults; range repair is left to timer.State.Normalize.
func (s *TimerStore) Load() (timer.State, error) {
	var st timer.State

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketTimer))

		st.DurationMinutes = s.defaultMinutes
		if v, ok := readInt(b, KeyDuration); ok && v > 0 {
			st.DurationMinutes = int(v)
		}

		st.Running = string(b.Get([]byte(KeyRunning))) == "true"

		if v, ok := readInt(b, KeyDeadline); ok {
			st.Deadline = time.UnixMilli(v)
		}

		st.RemainingSeconds = st.DurationMinutes * 60
		if v, ok := readInt(b, KeyRemaining); ok {
			st.RemainingSeconds = int(v)
		}
		return nil
	})

	return st, err
}

// Save writes every key in one transaction.
func (s *TimerStore) Save(st timer.State) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketTimer))

		if err := b.Put([]byte(KeyDuration), []byte(strconv.Itoa(st.DurationMinutes))); err != nil {
			return err
		}
		if err := b.Put([]byte(KeyRunning), []byte(strconv.FormatBool(st.Running))); err != nil {
			return err
		}
		if err := b.Put([]byte(KeyRemaining), []byte(strconv.Itoa(st.RemainingSeconds))); err != nil {
			return err
		}

		if st.Deadline.IsZero() {
			return b.Delete([]byte(KeyDeadline))
		}
		return b.Put([]byte(KeyDeadline), []byte(strconv.FormatInt(st.Deadline.UnixMilli(), 10)))
	})
}

// Close releases the file lock.
func (s *TimerStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func readInt(b *bbolt.Bucket, key string) (int64, bool) {
	raw := b.Get([]byte(key))
	if raw == nil {
		return 0, false
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
