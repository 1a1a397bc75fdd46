// Package notify holds the terminal implementations of the timer sinks used
// outside the interactive TUI.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/lifeos/internal/timer"
)

// Colors match the TUI theme.
const (
	colorSuccess = "#22C55E"
	colorError   = "#EF4444"
	colorWarning = "#F59E0B"
	colorInfo    = "#A78BFA"
)

// Console prints notifications as single styled lines.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(message string, severity timer.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.w, Style(severity).Render(Icon(severity)+" "+message))
}

// Style returns the foreground style for a severity.
func Style(severity timer.Severity) lipgloss.Style {
	color := colorInfo
	switch severity {
	case timer.SeveritySuccess:
		color = colorSuccess
	case timer.SeverityError:
		color = colorError
	case timer.SeverityWarning:
		color = colorWarning
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// Icon returns a short prefix for a severity.
func Icon(severity timer.Severity) string {
	switch severity {
	case timer.SeveritySuccess:
		return "✅"
	case timer.SeverityError:
		return "❌"
	case timer.SeverityWarning:
		return "🔥"
	default:
		return "💡"
	}
}

// LineDisplay prints each frame on its own line.
type LineDisplay struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLineDisplay(w io.Writer) *LineDisplay {
	return &LineDisplay{w: w}
}

func (d *LineDisplay) Render(f timer.Frame) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := "paused"
	if f.Running {
		state = "running"
	}
	clock := f.Clock
	if f.Alert {
		clock = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)).Bold(true).Render(clock)
	}
	fmt.Fprintf(d.w, "⏱️  %s (%s)\n", clock, state)
}
