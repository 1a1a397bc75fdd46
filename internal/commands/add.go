package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/lifeos/internal/app"
	"github.com/balkashynov/lifeos/internal/db"
	"github.com/balkashynov/lifeos/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add [task description]",
	Short: "Add a new task",
	Long: `Add a new task with optional metadata.

Smart parsing syntax:
  #tag1,tag2  - Tags (comma-separated or individual)
  @project    - Project name
  +priority   - Priority (low/medium/high or 1/2/3)
  due:3days   - Due date (today, tomorrow, dd/mm/yyyy, X days, X hours, X weeks)

Flags take precedence over parsed values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *app.Session) error {
		parsed := parser.ParseTitle(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			return fmt.Errorf("could not parse task: %s", strings.Join(parsed.Errors, ", "))
		}

		req, err := addRequest(cmd, parsed)
		if err != nil {
			return err
		}

		task, err := s.AddTask(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("creating task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created task #%d: %s\n", task.ID, task.Title)
		if task.Project != "" {
			fmt.Fprintf(out, "  Project: %s\n", task.Project)
		}
		if len(task.Tags) > 0 {
			var tagNames []string
			for _, tag := range task.Tags {
				tagNames = append(tagNames, tag.Name)
			}
			fmt.Fprintf(out, "  Tags: %s\n", strings.Join(tagNames, ", "))
		}
		if task.Priority > 0 {
			fmt.Fprintf(out, "  Priority: %s\n", priorityNames[task.Priority])
		}
		if task.Due != nil {
			fmt.Fprintf(out, "  Due: %s\n", parser.FormatDueDate(task.Due))
		}
		return nil
	}),
}

var priorityNames = []string{"", "low", "medium", "high"}

// addRequest merges parsed title metadata with explicit flags.
func addRequest(cmd *cobra.Command, parsed parser.ParsedTask) (db.CreateTaskRequest, error) {
	req := db.CreateTaskRequest{
		Title:    parsed.Title,
		Project:  parsed.Project,
		Tags:     parsed.Tags,
		Priority: parsed.Priority,
		DueDate:  parsed.DueDate,
	}

	if project, _ := cmd.Flags().GetString("project"); project != "" {
		req.Project = project
	}
	if tags, _ := cmd.Flags().GetStringSlice("tags"); len(tags) > 0 {
		req.Tags = tags
	}
	if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
		req.Priority = priority
	}
	if due, _ := cmd.Flags().GetString("due"); due != "" {
		dueDate, err := parser.ParseDueDate(due)
		if err != nil {
			return db.CreateTaskRequest{}, fmt.Errorf("parsing due date: %w", err)
		}
		req.DueDate = dueDate
	}
	req.Note, _ = cmd.Flags().GetString("note")

	return req, nil
}

func init() {
	addCmd.Flags().StringP("project", "p", "", "Project name")
	addCmd.Flags().StringSliceP("tags", "t", []string{}, "Comma-separated tags")
	addCmd.Flags().StringP("priority", "", "", "Priority: low, medium, high, or 1-3")
	addCmd.Flags().StringP("due", "", "", "Due date: dd/mm/yyyy, X days, X hours, X weeks")
	addCmd.Flags().StringP("note", "", "", "Additional notes")
}
