package timer

import (
	"context"
	"time"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Sound identifies an audio cue.
type Sound int

const (
	SoundWarning Sound = iota + 1
	SoundFinish
)

func (s Sound) String() string {
	switch s {
	case SoundWarning:
		return "warning"
	case SoundFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// Event types written to the event log.
const (
	EventFocusDone = "FOCUS_DONE"
)

// Frame is what the display sink receives on every render.
type Frame struct {
	Clock   string
	Seconds int
	Running bool
	Alert   bool
	Title   string
}

// Notifier shows a transient message.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Player plays an audio cue. Errors are logged and otherwise ignored.
type Player interface {
	Play(sound Sound) error
}

// EventLogger appends to the profile's event log. Calls are fire-and-forget.
type EventLogger interface {
	LogEvent(ctx context.Context, profileID, eventType, message string, metadata map[string]any)
}

// Display renders timer frames.
type Display interface {
	Render(frame Frame)
}

// Store persists timer state.
type Store interface {
	Load() (State, error)
	Save(state State) error
}

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type nopSinks struct{}

func (nopSinks) Notify(string, Severity) {}
func (nopSinks) Play(Sound) error        { return nil }
func (nopSinks) Render(Frame)            {}
func (nopSinks) LogEvent(context.Context, string, string, string, map[string]any) {
}
