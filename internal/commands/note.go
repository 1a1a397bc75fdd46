package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/lifeos/internal/app"
	"github.com/balkashynov/lifeos/internal/db"
	"github.com/balkashynov/lifeos/internal/models"
	"github.com/balkashynov/lifeos/internal/parser"
	"github.com/balkashynov/lifeos/internal/tui"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Capture and browse notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a note (+5 XP)",
	Long: `Add a note. Words starting with # become tags.

Examples:
  lifeos note add "Garden plan #home,ideas" -c "Tomatoes by the fence"
  lifeos note add Wifi password --pin`,
	Args: cobra.MinimumNArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		parsed := parser.ParseNote(strings.Join(args, " "))
		content, _ := cmd.Flags().GetString("content")
		pinned, _ := cmd.Flags().GetBool("pin")

		res, err := s.AddNote(cmd.Context(), db.CreateNoteRequest{
			Title:   parsed.Title,
			Content: content,
			Tags:    parsed.Tags,
			Pinned:  pinned,
		})
		if res.Note == nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "📝 Saved note #%d: %s\n", res.Note.ID, res.Note.Title)
		if len(res.Note.Tags) > 0 {
			fmt.Fprintf(out, "  Tags: %s\n", tagNames(res.Note.Tags))
		}
		if err != nil {
			return err
		}
		printXP(out, app.XPNoteAdded, res.XP)
		return nil
	}),
}

var noteListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List notes, pinned first",
	Args:    cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		tag, _ := cmd.Flags().GetString("tag")

		notes, err := s.Store.ListNotes(cmd.Context(), s.ProfileID, tag)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(notes) == 0 {
			fmt.Fprintln(out, "No notes yet. Use 'lifeos note add \"title\"' to write one.")
			return nil
		}

		title := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentBright)).Bold(true)
		muted := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))
		for _, n := range notes {
			pin := "  "
			if n.Pinned {
				pin = "📌"
			}
			fmt.Fprintf(out, "%-4d %s %s", n.ID, pin, title.Render(n.Title))
			if len(n.Tags) > 0 {
				fmt.Fprint(out, muted.Render("  #"+strings.ReplaceAll(tagNames(n.Tags), ", ", " #")))
			}
			fmt.Fprintln(out)
			if n.Content != "" {
				fmt.Fprintln(out, muted.Render("        "+n.Content))
			}
		}
		return nil
	}),
}

func tagNames(tags []models.Tag) string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return strings.Join(names, ", ")
}

func init() {
	noteAddCmd.Flags().StringP("content", "c", "", "Note body")
	noteAddCmd.Flags().Bool("pin", false, "Pin the note to the top of the list")
	noteListCmd.Flags().String("tag", "", "Only notes with this tag")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
}
