package commands

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/lifeos/internal/app"
	"github.com/balkashynov/lifeos/internal/tui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level and XP progress",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		p, err := s.Profile(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderProfile(p))
		return nil
	}),
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent activity",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		events, err := s.Store.RecentEvents(cmd.Context(), s.ProfileID, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(events)
		}
		if len(events) == 0 {
			fmt.Fprintln(out, "Nothing logged yet.")
			return nil
		}

		when := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))
		kind := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentBright)).Bold(true)
		for _, e := range events {
			fmt.Fprintf(out, "%s  %s  %s\n",
				when.Render(e.CreatedAt.Format("Jan 02 15:04")),
				kind.Render(fmt.Sprintf("%-14s", e.Type)),
				e.Message)
		}
		return nil
	}),
}

func init() {
	logCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	logCmd.Flags().Bool("json", false, "JSON output")
}
