package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/balkashynov/lifeos/internal/app"
	"github.com/balkashynov/lifeos/internal/tui"
	"github.com/balkashynov/lifeos/internal/xp"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed (+10 XP)",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		taskID, err := parseID(args[0])
		if err != nil {
			return err
		}

		res, err := s.CompleteTask(cmd.Context(), taskID)
		if res.Task == nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Marked task #%d as done: %s\n", res.Task.ID, res.Task.Title)
		if err != nil {
			return err
		}
		printXP(out, app.XPTaskDone, res.XP)
		return nil
	}),
}

var undoneCmd = &cobra.Command{
	Use:   "undone [task-id]",
	Short: "Mark a completed task back to todo status",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		taskID, err := parseID(args[0])
		if err != nil {
			return err
		}

		task, err := s.Store.MarkTaskUndone(cmd.Context(), s.ProfileID, taskID)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "↩️  Marked task #%d back to todo: %s\n", task.ID, task.Title)
		return nil
	}),
}

// printXP reports a grant and celebrates a level-up.
func printXP(w io.Writer, amount int, res xp.Result) {
	fmt.Fprintf(w, "+%d XP (%d total)\n", amount, res.NewXP)
	if res.LeveledUp {
		fmt.Fprintln(w, tui.RenderLevelUp(res.NewLevel))
	}
}
