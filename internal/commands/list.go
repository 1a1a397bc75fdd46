package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/lifeos/internal/app"
	"github.com/balkashynov/lifeos/internal/db"
	"github.com/balkashynov/lifeos/internal/models"
	"github.com/balkashynov/lifeos/internal/parser"
	"github.com/balkashynov/lifeos/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks with optional filters for status and project",
	Args:    cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		status, _ := cmd.Flags().GetString("status")
		project, _ := cmd.Flags().GetString("project")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		if status != "" && status != models.StatusTodo && status != models.StatusDone {
			return fmt.Errorf("invalid status '%s'. Use: todo or done", status)
		}

		tasks, err := s.Store.ListTasks(cmd.Context(), s.ProfileID, db.TaskQuery{Status: status, Project: project})
		if err != nil {
			return fmt.Errorf("fetching tasks: %w", err)
		}

		if jsonOutput {
			return renderTasksJSON(cmd.OutOrStdout(), tasks)
		}
		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks found. Use 'lifeos add \"task description\"' to create your first task.")
			return nil
		}
		renderTaskTable(cmd.OutOrStdout(), tasks)
		return nil
	}),
}

// renderTaskTable prints tasks as an aligned, colored table.
func renderTaskTable(w io.Writer, tasks []models.Task) {
	header := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentBright)).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorDisabledText))
	done := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSuccess))

	fmt.Fprintln(w, header.Render(fmt.Sprintf("%-4s %-3s %-40s %-15s %-8s %s", "ID", "", "TITLE", "PROJECT", "PRIORITY", "TAGS")))
	fmt.Fprintln(w, muted.Render(strings.Repeat("─", 80)))

	for _, task := range tasks {
		var tagNames []string
		for _, tag := range task.Tags {
			tagNames = append(tagNames, "#"+tag.Name)
		}

		title := task.Title
		if len(title) > 38 {
			title = title[:35] + "..."
		}
		project := task.Project
		if len(project) > 13 {
			project = project[:10] + "..."
		}

		mark := "○"
		if task.Status == models.StatusDone {
			mark = done.Render("✓")
		}

		line := fmt.Sprintf("%-4d %s   %-40s %-15s %-8s %s",
			task.ID,
			mark,
			title,
			project,
			priorityNames[task.Priority],
			strings.Join(tagNames, " "))
		if task.Status == models.StatusDone {
			line = muted.Render(line)
		}
		fmt.Fprintln(w, line)

		if task.Due != nil && task.Status != models.StatusDone {
			fmt.Fprintln(w, muted.Render("     "+parser.FormatDueDate(task.Due)))
		}
	}
}

type jsonTask struct {
	ID       uint     `json:"id"`
	Title    string   `json:"title"`
	Status   string   `json:"status"`
	Project  string   `json:"project,omitempty"`
	Priority string   `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Due      string   `json:"due,omitempty"`
}

func renderTasksJSON(w io.Writer, tasks []models.Task) error {
	out := make([]jsonTask, 0, len(tasks))
	for _, task := range tasks {
		jt := jsonTask{
			ID:       task.ID,
			Title:    task.Title,
			Status:   task.Status,
			Project:  task.Project,
			Priority: priorityNames[task.Priority],
		}
		for _, tag := range task.Tags {
			jt.Tags = append(jt.Tags, tag.Name)
		}
		if task.Due != nil {
			jt.Due = task.Due.Format("2006-01-02")
		}
		out = append(out, jt)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	listCmd.Flags().StringP("status", "s", "", "Filter by status: todo, done")
	listCmd.Flags().StringP("project", "p", "", "Filter by project")
	listCmd.Flags().Bool("json", false, "JSON output")
}
