package timer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrRunning         = errors.New("timer is running")
)

const (
	// DefaultIdleTitle is shown when no session is counting down.
	DefaultIdleTitle = "Life OS"
	finishedTitle    = "Done!"

	msgPauseFirst = "Pause the timer before changing the duration."
	msgWarning    = "30 seconds left!"
	msgFinished   = "Time's up! Take a break."
	msgFocusDone  = "Focus session complete"
)

// Option configures an Engine.
type Option func(*Engine)

func WithClock(c Clock) Option             { return func(e *Engine) { e.clock = c } }
func WithScheduler(s Scheduler) Option     { return func(e *Engine) { e.sched = s } }
func WithNotifier(n Notifier) Option       { return func(e *Engine) { e.notifier = n } }
func WithPlayer(p Player) Option           { return func(e *Engine) { e.player = p } }
func WithEventLogger(l EventLogger) Option { return func(e *Engine) { e.events = l } }
func WithDisplay(d Display) Option         { return func(e *Engine) { e.display = d } }
func WithLogger(l *slog.Logger) Option     { return func(e *Engine) { e.logger = l } }
func WithProfile(id string) Option         { return func(e *Engine) { e.profileID = id } }
func WithIdleTitle(t string) Option        { return func(e *Engine) { e.idleTitle = t } }

// WithDefaultMinutes sets the duration used when none is persisted.
func WithDefaultMinutes(m int) Option {
	return func(e *Engine) {
		if m > 0 {
			e.defaultMinutes = m
		}
	}
}

// Status is a point-in-time view of the engine.
type Status struct {
	State     State
	Remaining int
	Clock     string
	Alert     bool
}

// Engine is a deadline-based countdown. While running, remaining time is
// always derived from the persisted deadline, so missed or late ticks only
// cause a larger jump on the next observation.
//
// Sink calls are made after the engine lock is released; a sink may call
// back into the engine.
type Engine struct {
	mu sync.Mutex

	store    Store
	clock    Clock
	sched    Scheduler
	notifier Notifier
	player   Player
	events   EventLogger
	display  Display
	logger   *slog.Logger

	profileID      string
	defaultMinutes int
	idleTitle      string

	state     State
	warned    bool
	loopGen   uint64
	graceGen  uint64
	stopLoop  func()
	stopGrace func()
}

// New loads persisted state from store and returns an idle-or-running engine.
// No loop is started until Start or Recover is called.
func New(store Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:          store,
		clock:          systemClock{},
		sched:          RealScheduler{},
		notifier:       nopSinks{},
		player:         nopSinks{},
		events:         nopSinks{},
		display:        nopSinks{},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaultMinutes: DefaultMinutes,
		idleTitle:      DefaultIdleTitle,
	}
	for _, opt := range opts {
		opt(e)
	}

	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load timer state: %w", err)
	}
	e.state = state.Normalize(e.defaultMinutes)
	return e, nil
}

// effects are sink calls queued while the lock is held.
type effects []func()

func (fx *effects) add(f func()) { *fx = append(*fx, f) }

func (fx *effects) run() {
	for _, f := range *fx {
		f()
	}
}

// Configure sets the session length. It is rejected while running.
func (e *Engine) Configure(minutes int) (string, error) {
	var fx effects
	defer fx.run()
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Running {
		fx.add(e.notify(msgPauseFirst, SeverityError))
		return "", ErrRunning
	}
	if minutes <= 0 {
		fx.add(e.notify(ErrInvalidDuration.Error(), SeverityError))
		return "", ErrInvalidDuration
	}

	next := State{
		DurationMinutes:  minutes,
		RemainingSeconds: minutes * 60,
	}
	if err := e.save(next); err != nil {
		return "", fmt.Errorf("configure timer: %w", err)
	}

	e.cancelGrace()
	e.state = next
	e.warned = false
	fx.add(e.render(e.frame(next.RemainingSeconds)))
	fx.add(e.notify(fmt.Sprintf("Timer set to %d minutes", minutes), SeveritySuccess))
	return Format(next.RemainingSeconds), nil
}

// BeginEdit reports whether the duration may be edited right now, showing the
// same message Configure would when it may not.
func (e *Engine) BeginEdit() error {
	var fx effects
	defer fx.run()
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Running {
		fx.add(e.notify(msgPauseFirst, SeverityError))
		return ErrRunning
	}
	return nil
}

// Start begins or resumes the countdown. It is a no-op while running. The
// 30 second warning is re-armed only when a full-length session begins.
func (e *Engine) Start() error {
	var fx effects
	defer fx.run()
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Running {
		return nil
	}

	base := e.state.RemainingSeconds
	if base <= 0 {
		base = e.state.FullSeconds()
	}

	next := e.state
	next.Running = true
	next.Deadline = e.clock.Now().Add(time.Duration(base) * time.Second)
	if err := e.save(next); err != nil {
		return fmt.Errorf("start timer: %w", err)
	}

	e.cancelGrace()
	if base == next.FullSeconds() {
		e.warned = false
	}
	e.state = next
	e.startLoop()
	fx.add(e.render(e.frame(base)))
	return nil
}

// Pause banks the remaining time. It is a no-op while idle.
func (e *Engine) Pause() error {
	var fx effects
	defer fx.run()
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Running {
		return nil
	}

	remaining := max(0, remainingAt(e.state.Deadline, e.clock.Now()))
	next := e.state
	next.Running = false
	next.Deadline = time.Time{}
	next.RemainingSeconds = remaining
	if err := e.save(next); err != nil {
		return fmt.Errorf("pause timer: %w", err)
	}

	e.cancelLoop()
	e.state = next
	fx.add(e.render(e.frame(remaining)))
	return nil
}

// Toggle pauses a running timer and starts an idle one.
func (e *Engine) Toggle() error {
	e.mu.Lock()
	running := e.state.Running
	e.mu.Unlock()

	if running {
		return e.Pause()
	}
	return e.Start()
}

// Reset stops the countdown and restores the full configured duration.
func (e *Engine) Reset() error {
	var fx effects
	defer fx.run()
	e.mu.Lock()
	defer e.mu.Unlock()

	next := State{
		DurationMinutes:  e.state.DurationMinutes,
		RemainingSeconds: e.state.FullSeconds(),
	}
	if err := e.save(next); err != nil {
		return fmt.Errorf("reset timer: %w", err)
	}

	e.cancelLoop()
	e.cancelGrace()
	e.state = next
	e.warned = false
	fx.add(e.render(e.frame(next.RemainingSeconds)))
	return nil
}

// Recover resumes after a process start. A deadline still in the future
// resumes the loop; one that passed while nothing was running finishes the
// session silently. Neither path plays sounds or notifies.
func (e *Engine) Recover() error {
	var fx effects
	defer fx.run()
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Running {
		fx.add(e.render(e.frame(e.state.RemainingSeconds)))
		return nil
	}

	now := e.clock.Now()
	if now.Before(e.state.Deadline) {
		e.startLoop()
		fx.add(e.render(e.frame(remainingAt(e.state.Deadline, now))))
		return nil
	}

	e.logger.Info("timer deadline passed while stopped", "deadline", e.state.Deadline)
	return e.finish(true, &fx)
}

// Snapshot returns the current state with remaining time derived from the clock.
func (e *Engine) Snapshot() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	remaining := e.state.RemainingSeconds
	if e.state.Running {
		remaining = max(0, remainingAt(e.state.Deadline, e.clock.Now()))
	}
	return Status{
		State:     e.state,
		Remaining: remaining,
		Clock:     Format(remaining),
		Alert:     e.alert(remaining),
	}
}

// Close stops any pending loop or grace timer. Persisted state is untouched,
// so a running session keeps its deadline for the next Recover.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelLoop()
	e.cancelGrace()
}

func (e *Engine) tick(gen uint64) {
	var fx effects
	defer fx.run()
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.loopGen || !e.state.Running {
		return
	}

	remaining := remainingAt(e.state.Deadline, e.clock.Now())
	if remaining == WarningSeconds && !e.warned {
		e.warned = true
		fx.add(e.play(SoundWarning))
		fx.add(e.notify(msgWarning, SeverityWarning))
	}

	if remaining >= 0 {
		fx.add(e.render(e.frame(remaining)))
		return
	}

	if err := e.finish(false, &fx); err != nil {
		e.logger.Error("finish timer", "error", err)
	}
}

// finish moves a running session to idle at full duration. The in-memory
// state is reset even when persisting fails; Recover repeats the transition
// silently on the next start in that case.
func (e *Engine) finish(silent bool, fx *effects) error {
	e.cancelLoop()

	next := State{
		DurationMinutes:  e.state.DurationMinutes,
		RemainingSeconds: e.state.FullSeconds(),
	}
	saveErr := e.save(next)
	e.state = next
	e.warned = false

	fx.add(e.render(Frame{Clock: Format(0), Title: finishedTitle}))
	if !silent {
		fx.add(e.play(SoundFinish))
		profileID := e.profileID
		minutes := next.DurationMinutes
		fx.add(func() {
			e.events.LogEvent(context.Background(), profileID, EventFocusDone, msgFocusDone,
				map[string]any{"minutes": minutes})
		})
		fx.add(e.notify(msgFinished, SeveritySuccess))
	}

	e.cancelGrace()
	e.graceGen++
	gen := e.graceGen
	e.stopGrace = e.sched.After(GracePeriod, func() { e.endGrace(gen) })

	if saveErr != nil {
		return fmt.Errorf("finish timer: %w", saveErr)
	}
	return nil
}

func (e *Engine) endGrace(gen uint64) {
	var fx effects
	defer fx.run()
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.graceGen || e.state.Running {
		return
	}
	e.stopGrace = nil
	fx.add(e.render(e.frame(e.state.FullSeconds())))
}

func (e *Engine) startLoop() {
	e.cancelLoop()
	gen := e.loopGen
	e.stopLoop = e.sched.Every(TickInterval, func() { e.tick(gen) })
}

// cancelLoop invalidates the current loop generation so a tick already in
// flight is ignored.
func (e *Engine) cancelLoop() {
	e.loopGen++
	if e.stopLoop != nil {
		e.stopLoop()
		e.stopLoop = nil
	}
}

func (e *Engine) cancelGrace() {
	e.graceGen++
	if e.stopGrace != nil {
		e.stopGrace()
		e.stopGrace = nil
	}
}

func (e *Engine) save(s State) error {
	if err := e.store.Save(s); err != nil {
		e.logger.Error("persist timer state", "error", err)
		return err
	}
	return nil
}

func (e *Engine) alert(seconds int) bool {
	return e.state.Running && seconds > 0 && seconds <= WarningSeconds
}

func (e *Engine) frame(seconds int) Frame {
	clock := Format(seconds)
	title := e.idleTitle
	if e.state.Running {
		title = clock + " - Focus"
	}
	return Frame{
		Clock:   clock,
		Seconds: max(0, seconds),
		Running: e.state.Running,
		Alert:   e.alert(seconds),
		Title:   title,
	}
}

func (e *Engine) render(f Frame) func() {
	return func() { e.display.Render(f) }
}

func (e *Engine) notify(msg string, sev Severity) func() {
	return func() { e.notifier.Notify(msg, sev) }
}

func (e *Engine) play(s Sound) func() {
	return func() {
		if err := e.player.Play(s); err != nil {
			e.logger.Warn("audio playback failed", "sound", s.String(), "error", err)
		}
	}
}
