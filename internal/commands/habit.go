package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/lifeos/internal/app"
	"github.com/balkashynov/lifeos/internal/tui"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Track daily habits",
}

var habitAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a daily habit",
	Args:  cobra.MinimumNArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		habit, err := s.Store.CreateHabit(cmd.Context(), s.ProfileID, strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created habit #%d: %s\n", habit.ID, habit.Name)
		return nil
	}),
}

var habitListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "Show today's habits and streaks",
	Args:    cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		habits, err := s.Store.ListHabits(cmd.Context(), s.ProfileID, time.Now())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(habits) == 0 {
			fmt.Fprintln(out, "No habits yet. Use 'lifeos habit add \"name\"' to create one.")
			return nil
		}

		done := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSuccess))
		streak := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorWarning))
		for _, h := range habits {
			mark := "○"
			if h.Done {
				mark = done.Render("✓")
			}
			line := fmt.Sprintf("%-4d %s %-30s", h.Habit.ID, mark, h.Habit.Name)
			if h.Streak > 0 {
				line += streak.Render(fmt.Sprintf(" 🔥 %d", h.Streak))
			}
			fmt.Fprintln(out, line)
		}
		return nil
	}),
}

var habitCheckCmd = &cobra.Command{
	Use:   "check [habit-id]",
	Short: "Check or uncheck a habit for today (+5 XP when checking)",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		res, err := s.ToggleHabit(cmd.Context(), id)
		if res.Habit == nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !res.Done {
			fmt.Fprintf(out, "↩️  Unchecked %s for today\n", res.Habit.Name)
			return nil
		}
		fmt.Fprintf(out, "✅ %s done for today\n", res.Habit.Name)
		if err != nil {
			return err
		}
		printXP(out, app.XPHabitDone, *res.XP)
		return nil
	}),
}

func init() {
	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitCheckCmd)
}
