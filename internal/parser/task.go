package parser

import (
	"strings"
	"time"
)

// ParsedTask is a task captured from a single line.
type ParsedTask struct {
	Title    string
	Project  string
	Tags     []string
	Priority string // low, medium, high or empty
	DueDate  *time.Time
	Errors   []string
}

// ParseTitle reads "Task title #tag1,tag2 @project +priority due:3days".
func ParseTitle(input string) ParsedTask {
	return ParseTitleAt(input, time.Now())
}

// ParseTitleAt is ParseTitle with relative due dates computed from now.
func ParseTitleAt(input string, now time.Time) ParsedTask {
	var out ParsedTask

	l := scan(input, func(l *line, prefix byte, value string) bool {
		switch {
		case prefix == '@' && namePattern.MatchString(value):
			if out.Project == "" {
				out.Project = value
			}
			return true
		case prefix == '+':
			if p := NormalizePriority(value); p != "" {
				out.Priority = p
			} else {
				l.fail("Invalid priority '" + value + "'. Use: low, medium, high, 1, 2, or 3")
			}
			return true
		case prefix == 'd' && strings.HasPrefix(value, "ue:"):
			raw := strings.TrimPrefix(value, "ue:")
			due, err := ParseDueDateAt(raw, now)
			if err != nil {
				l.fail("Invalid due date '" + raw + "': " + err.Error())
			} else {
				out.DueDate = due
			}
			return true
		}
		return false
	})

	out.Title = l.text()
	out.Tags = l.tags
	out.Errors = l.errors
	return out
}

// NormalizePriority maps 1-3 and the level names to low, medium or high.
// Anything else yields "".
func NormalizePriority(priority string) string {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "1", "low":
		return "low"
	case "2", "medium", "med":
		return "medium"
	case "3", "high":
		return "high"
	}
	return ""
}
