package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/lifeos/internal/timer"
)

// ToastDuration is how long a notification stays on screen.
const ToastDuration = 3 * time.Second

// Engine is the part of the timer engine the TUI drives.
type Engine interface {
	Configure(minutes int) (string, error)
	BeginEdit() error
	Toggle() error
	Reset() error
	Recover() error
	Snapshot() timer.Status
}

// frameMsg carries a rendered frame from the engine.
type frameMsg timer.Frame

// toastMsg carries an engine notification.
type toastMsg struct {
	text     string
	severity timer.Severity
}

// toastExpiredMsg dismisses the toast with the matching sequence number.
type toastExpiredMsg struct{ seq int }

// editReadyMsg is sent when the engine allows editing the duration.
type editReadyMsg struct{}

// engineErrMsg reports a failed engine call, usually a persist failure.
type engineErrMsg struct{ err error }

// ProgramSink forwards engine output into a running tea.Program. Messages
// sent before Attach are dropped.
type ProgramSink struct {
	mu sync.Mutex
	p  *tea.Program
}

func (s *ProgramSink) Attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}

func (s *ProgramSink) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (s *ProgramSink) Render(f timer.Frame) { s.send(frameMsg(f)) }

func (s *ProgramSink) Notify(message string, severity timer.Severity) {
	s.send(toastMsg{text: message, severity: severity})
}

// TimerModel is the interactive pomodoro screen.
type TimerModel struct {
	engine Engine
	width  int
	height int

	frame timer.Frame

	toast    *toastMsg
	toastSeq int

	editing bool
	input   textinput.Model

	quitting bool
}

// NewTimerModel creates a timer screen showing the engine's current state.
func NewTimerModel(engine Engine) TimerModel {
	input := textinput.New()
	input.Placeholder = "minutes"
	input.CharLimit = 4
	input.Width = 8
	input.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return errors.New("digits only")
			}
		}
		return nil
	}

	st := engine.Snapshot()
	return TimerModel{
		engine: engine,
		input:  input,
		frame: timer.Frame{
			Clock:   st.Clock,
			Seconds: st.Remaining,
			Running: st.State.Running,
			Alert:   st.Alert,
		},
	}
}

// Init recovers persisted state. It runs as a command so the engine's first
// render reaches the program through the sink.
func (m TimerModel) Init() tea.Cmd {
	return m.call(m.engine.Recover)
}

func (m TimerModel) call(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return engineErrMsg{err: err}
		}
		return nil
	}
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = timer.Frame(msg)
		return m, nil

	case toastMsg:
		return m.showToast(msg)

	case engineErrMsg:
		if errors.Is(msg.err, timer.ErrRunning) || errors.Is(msg.err, timer.ErrInvalidDuration) {
			// already notified by the engine
			return m, nil
		}
		return m.showToast(toastMsg{text: msg.err.Error(), severity: timer.SeverityError})

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case editReadyMsg:
		m.editing = true
		m.input.SetValue(strconv.Itoa(m.engine.Snapshot().State.DurationMinutes))
		m.input.CursorEnd()
		return m, m.input.Focus()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case " ":
			return m, m.call(m.engine.Toggle)
		case "r", "R":
			return m, m.call(m.engine.Reset)
		case "e", "E":
			engine := m.engine
			return m, func() tea.Msg {
				if engine.BeginEdit() != nil {
					return nil
				}
				return editReadyMsg{}
			}
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m TimerModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		minutes, _ := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		m.editing = false
		m.input.Blur()
		engine := m.engine
		return m, m.call(func() error {
			_, err := engine.Configure(minutes)
			return err
		})
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TimerModel) showToast(t toastMsg) (tea.Model, tea.Cmd) {
	m.toastSeq++
	m.toast = &t
	seq := m.toastSeq
	return m, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// View renders the timer TUI
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	var components []string

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	title := m.frame.Title
	if title == "" {
		title = timer.DefaultIdleTitle
	}
	components = append(components, titleStyle.Render(title))

	components = append(components, m.centered(renderBigClock(m.frame.Clock, m.frame.Alert)))

	stateText := "paused"
	stateColor := ColorSecondaryText
	if m.frame.Running {
		stateText = "running"
		stateColor = ColorSuccess
	}
	stateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(stateColor)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, stateStyle.Render(stateText))

	if m.editing {
		components = append(components, m.centered("Duration: "+m.input.View()))
	}
	if m.toast != nil {
		components = append(components, m.centered(renderToast(*m.toast)))
	}

	panel := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, panel, helpBar)
}

func (m TimerModel) centered(block string) string {
	var b strings.Builder
	for i, line := range strings.Split(block, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width).Render(line))
	}
	return b.String()
}

func renderToast(t toastMsg) string {
	color := ColorAccentBright
	switch t.severity {
	case timer.SeveritySuccess:
		color = ColorSuccess
	case timer.SeverityWarning:
		color = ColorWarning
	case timer.SeverityError:
		color = ColorError
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 2).
		Render(t.text)
}

// bigDigits is 5-row block art for the clock.
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock draws an MM:SS string in block digits, red while alerting.
func renderBigClock(clock string, alert bool) string {
	var lines [5]strings.Builder
	for _, r := range clock {
		art, ok := bigDigits[r]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	color := ColorAccentBright
	if alert {
		color = ColorError
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)

	rows := make([]string, len(lines))
	for i := range lines {
		rows[i] = style.Render(lines[i].String())
	}
	return strings.Join(rows, "\n")
}

func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "space start/pause · r reset · e edit duration · q quit (keeps running)"
	if m.editing {
		helpText = "enter save · esc cancel"
	}
	return helpStyle.Render(helpText)
}

// RunTimerTUI runs the timer screen until the user quits. The engine must
// have been created with sink as its notifier and display.
func RunTimerTUI(engine Engine, sink *ProgramSink) error {
	p := tea.NewProgram(NewTimerModel(engine), tea.WithAltScreen())
	sink.Attach(p)

	if _, err := p.Run(); err != nil {
		return err
	}

	st := engine.Snapshot()
	if st.State.Running {
		fmt.Printf("\n💡 Timer is still running: %s left.\n", st.Clock)
		fmt.Printf("   Use 'lifeos timer status' to check it or 'lifeos timer pause' to pause it.\n")
	}
	return nil
}
