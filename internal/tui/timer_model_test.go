package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/lifeos/internal/timer"
	"github.com/balkashynov/lifeos/internal/xp"
)

type fakeEngine struct {
	calls      []string
	configured int
	editErr    error
	status     timer.Status
}

func (f *fakeEngine) Configure(minutes int) (string, error) {
	f.calls = append(f.calls, "configure")
	f.configured = minutes
	if minutes <= 0 {
		return "", timer.ErrInvalidDuration
	}
	return timer.Format(minutes * 60), nil
}

func (f *fakeEngine) BeginEdit() error {
	f.calls = append(f.calls, "edit")
	return f.editErr
}

func (f *fakeEngine) Toggle() error  { f.calls = append(f.calls, "toggle"); return nil }
func (f *fakeEngine) Reset() error   { f.calls = append(f.calls, "reset"); return nil }
func (f *fakeEngine) Recover() error { f.calls = append(f.calls, "recover"); return nil }

func (f *fakeEngine) Snapshot() timer.Status { return f.status }

func newTestModel(engine *fakeEngine) TimerModel {
	engine.status = timer.Status{
		State:     timer.DefaultState(25),
		Remaining: 25 * 60,
		Clock:     "25:00",
	}
	m := NewTimerModel(engine)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(TimerModel)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitRecovers(t *testing.T) {
	engine := &fakeEngine{}
	m := newTestModel(engine)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, []string{"recover"}, engine.calls)
}

func TestKeysDriveEngine(t *testing.T) {
	engine := &fakeEngine{}
	m := newTestModel(engine)

	_, cmd := m.Update(key(" "))
	require.NotNil(t, cmd)
	cmd()

	_, cmd = m.Update(key("r"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"toggle", "reset"}, engine.calls)
}

func TestFrameUpdatesView(t *testing.T) {
	m := newTestModel(&fakeEngine{})

	next, _ := m.Update(frameMsg{Clock: "00:29", Seconds: 29, Running: true, Alert: true, Title: "00:29 - Focus"})
	m = next.(TimerModel)

	view := m.View()
	assert.Contains(t, view, "00:29 - Focus")
	assert.Contains(t, view, "running")
}

func TestToastExpiresBySequence(t *testing.T) {
	m := newTestModel(&fakeEngine{})

	next, cmd := m.Update(toastMsg{text: "first", severity: timer.SeverityInfo})
	require.NotNil(t, cmd)
	m = next.(TimerModel)
	next, _ = m.Update(toastMsg{text: "second", severity: timer.SeverityWarning})
	m = next.(TimerModel)

	// the first toast's timer must not dismiss the second
	next, _ = m.Update(toastExpiredMsg{seq: 1})
	m = next.(TimerModel)
	require.NotNil(t, m.toast)
	assert.Contains(t, m.View(), "second")

	next, _ = m.Update(toastExpiredMsg{seq: 2})
	m = next.(TimerModel)
	assert.Nil(t, m.toast)
}

func TestEditFlowConfigures(t *testing.T) {
	engine := &fakeEngine{}
	m := newTestModel(engine)

	_, cmd := m.Update(key("e"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, editReadyMsg{}, msg)

	next, _ := m.Update(msg)
	m = next.(TimerModel)
	require.True(t, m.editing)
	assert.Equal(t, "25", m.input.Value())

	m.input.SetValue("40")
	next, cmd = m.Update(key("enter"))
	m = next.(TimerModel)
	assert.False(t, m.editing)
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, 40, engine.configured)
}

func TestEditRefusedWhileRunning(t *testing.T) {
	engine := &fakeEngine{editErr: timer.ErrRunning}
	m := newTestModel(engine)

	_, cmd := m.Update(key("e"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.False(t, m.editing)
}

func TestEngineErrorsBecomeToasts(t *testing.T) {
	m := newTestModel(&fakeEngine{})

	next, _ := m.Update(engineErrMsg{err: timer.ErrRunning})
	assert.Nil(t, next.(TimerModel).toast)

	next, cmd := m.Update(engineErrMsg{err: errors.New("disk full")})
	assert.NotNil(t, cmd)
	require.NotNil(t, next.(TimerModel).toast)
	assert.Equal(t, timer.SeverityError, next.(TimerModel).toast.severity)
}

func TestQuit(t *testing.T) {
	m := newTestModel(&fakeEngine{})

	next, cmd := m.Update(key("q"))
	assert.True(t, next.(TimerModel).quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderBigClock(t *testing.T) {
	out := renderBigClock("12:05", false)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, out, "█")

	assert.Empty(t, strings.TrimSpace(renderBigClock("", true)))
}

func TestProgramSinkDropsBeforeAttach(t *testing.T) {
	var sink ProgramSink
	assert.NotPanics(t, func() {
		sink.Render(timer.Frame{Clock: "00:00"})
		sink.Notify("hi", timer.SeverityInfo)
	})
}

func TestRenderProfile(t *testing.T) {
	out := RenderProfile(xp.Profile{ID: "p", XP: 250, Level: 3})
	assert.Contains(t, out, "Level 3")
	assert.Contains(t, out, "50 / 100 XP to level 4")
	assert.Contains(t, RenderLevelUp(4), "level 4")
}
