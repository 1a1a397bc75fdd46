package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/lifeos/internal/app"
	"github.com/balkashynov/lifeos/internal/db"
	"github.com/balkashynov/lifeos/internal/models"
	"github.com/balkashynov/lifeos/internal/tui"
)

const kindsHelp = `Kind is one of task, note, tx or habit and defaults to task:
  lifeos rm 3           # task #3
  lifeos rm note 2      # note #2`

// parseTarget reads "[kind] id".
func parseTarget(args []string) (models.Kind, uint, error) {
	kind := models.KindTask
	if len(args) == 2 {
		k, err := db.ParseKind(args[0])
		if err != nil {
			return "", 0, err
		}
		kind = k
	}

	id, err := parseID(args[len(args)-1])
	if err != nil {
		return "", 0, err
	}
	return kind, id, nil
}

var rmCmd = &cobra.Command{
	Use:     "rm [kind] <id>",
	Aliases: []string{"delete"},
	Short:   "Move an item to the trash",
	Long:    "Move a task, note, transaction or habit to the trash.\n\n" + kindsHelp,
	Args:    cobra.RangeArgs(1, 2),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		kind, id, err := parseTarget(args)
		if err != nil {
			return err
		}

		item, err := s.Store.DeleteItem(cmd.Context(), s.ProfileID, kind, id)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Moved %s #%d to trash: %s\n", item.Kind, item.ID, item.Label)
		return nil
	}),
}

var restoreCmd = &cobra.Command{
	Use:   "restore [kind] <id>",
	Short: "Restore an item from the trash",
	Long:  "Take a trashed item back.\n\n" + kindsHelp,
	Args:  cobra.RangeArgs(1, 2),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		kind, id, err := parseTarget(args)
		if err != nil {
			return err
		}

		item, err := s.Store.RestoreItem(cmd.Context(), s.ProfileID, kind, id)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "📤 Restored %s #%d: %s\n", item.Kind, item.ID, item.Label)
		return nil
	}),
}

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "List everything in the trash",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		items, err := s.Store.Trash(cmd.Context(), s.ProfileID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "Trash is empty.")
			return nil
		}

		kind := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))
		for _, item := range items {
			fmt.Fprintf(out, "%s %-4d %-40s deleted %s\n",
				kind.Render(fmt.Sprintf("%-5s", item.Kind)),
				item.ID, item.Label, item.DeletedAt.Format("Jan 02 15:04"))
		}
		return nil
	}),
}

var purgeCmd = &cobra.Command{
	Use:   "purge [kind] <id>",
	Short: "Permanently delete an item from the trash",
	Long:  "Delete a trashed item for good. Only trashed items can be purged.\n\n" + kindsHelp,
	Args:  cobra.RangeArgs(1, 2),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		kind, id, err := parseTarget(args)
		if err != nil {
			return err
		}

		item, err := s.Store.PurgeItem(cmd.Context(), s.ProfileID, kind, id)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Purged %s #%d: %s\n", item.Kind, item.ID, item.Label)
		return nil
	}),
}
