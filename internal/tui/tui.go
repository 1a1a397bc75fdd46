package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/lifeos/internal/xp"
)

const progressWidth = 40

// RenderProfile draws the level card shown by the stats command.
func RenderProfile(p xp.Profile) string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)
	b.WriteString(header.Render(fmt.Sprintf("⭐ Level %d", p.Level)))
	b.WriteString("\n\n")

	bar := progress.New(
		progress.WithGradient(ColorAccentMain, ColorAccentBright),
		progress.WithWidth(progressWidth),
		progress.WithoutPercentage(),
	)
	pct := xp.Progress(p.XP, p.Level)
	b.WriteString(bar.ViewAs(float64(pct) / xp.PointsPerLevel))
	b.WriteString("\n")

	detail := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString(detail.Render(fmt.Sprintf("%d / %d XP to level %d · %d XP total",
		pct, xp.PointsPerLevel, p.Level+1, p.XP)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())
}

// RenderLevelUp is the banner printed when a grant crosses a level boundary.
func RenderLevelUp(level int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)).
		Bold(true).
		Render(fmt.Sprintf("🎉 Level up! You are now level %d", level))
}
