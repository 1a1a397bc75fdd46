package timer

import (
	"fmt"
	"time"
)

const (
	// DefaultMinutes is the session length used until the user configures one.
	DefaultMinutes = 25

	// WarningSeconds is the remaining time at which the warning fires.
	WarningSeconds = 30

	// GracePeriod is how long 00:00 stays on screen after a session ends.
	GracePeriod = 5 * time.Second

	// TickInterval is the observation loop period.
	TickInterval = time.Second
)

// State is the persisted timer state. RemainingSeconds is authoritative while
// idle, Deadline while running.
type State struct {
	DurationMinutes  int       `json:"duration_minutes"`
	Running          bool      `json:"running"`
	RemainingSeconds int       `json:"remaining_seconds"`
	Deadline         time.Time `json:"deadline"`
}

// DefaultState returns an idle timer with the full default duration.
func DefaultState(minutes int) State {
	if minutes <= 0 {
		minutes = DefaultMinutes
	}
	return State{
		DurationMinutes:  minutes,
		RemainingSeconds: minutes * 60,
	}
}

// FullSeconds is the configured session length in seconds.
func (s State) FullSeconds() int {
	return s.DurationMinutes * 60
}

// Normalize repairs inconsistent persisted values instead of failing: a bad
// duration falls back to defaultMinutes, negative remaining time is clamped to
// zero and a running timer without a deadline becomes idle at full duration.
func (s State) Normalize(defaultMinutes int) State {
	if defaultMinutes <= 0 {
		defaultMinutes = DefaultMinutes
	}
	if s.DurationMinutes <= 0 {
		s.DurationMinutes = defaultMinutes
	}
	if s.RemainingSeconds < 0 {
		s.RemainingSeconds = 0
	}
	if s.Running && s.Deadline.IsZero() {
		s.Running = false
		s.RemainingSeconds = s.FullSeconds()
	}
	if !s.Running {
		s.Deadline = time.Time{}
	}
	return s
}

// remainingAt returns the whole seconds left until deadline, rounded up.
// The result is negative once the deadline has passed by a full second.
func remainingAt(deadline, now time.Time) int {
	d := deadline.Sub(now)
	secs := int(d / time.Second)
	if d%time.Second > 0 {
		secs++
	}
	return secs
}

// Format renders seconds as mm:ss. Negative values render as 00:00.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
