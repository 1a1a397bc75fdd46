package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	absoluteDue = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeDue = regexp.MustCompile(`^(\d+)\s*(hours?|days?|weeks?)$`)
)

// relativeLimits caps each unit at roughly a year.
var relativeLimits = map[string]int{"hour": 8760, "day": 365, "week": 52}

var errDueFormat = errors.New("invalid date format. Use: today, tomorrow, dd/mm/yyyy, X days, X hours, or X weeks")

// ParseDueDate parses today, tomorrow, dd/mm/yyyy and "X hours|days|weeks".
// Day-based forms resolve to the last second of the target day.
func ParseDueDate(input string) (*time.Time, error) {
	return ParseDueDateAt(input, time.Now())
}

// ParseDueDateAt is ParseDueDate with relative forms computed from now.
func ParseDueDateAt(input string, now time.Time) (*time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	var due time.Time
	switch {
	case input == "":
		return nil, nil
	case input == "today":
		due = endOfDay(now)
	case input == "tomorrow":
		due = endOfDay(now.AddDate(0, 0, 1))
	default:
		if m := absoluteDue.FindStringSubmatch(input); m != nil {
			d, err := absoluteDate(m[1], m[2], m[3])
			if err != nil {
				return nil, err
			}
			due = d
			break
		}
		m := relativeDue.FindStringSubmatch(input)
		if m == nil {
			return nil, errDueFormat
		}
		d, err := relativeDate(m[1], strings.TrimSuffix(m[2], "s"), now)
		if err != nil {
			return nil, err
		}
		due = d
	}
	return &due, nil
}

func absoluteDate(dd, mm, yyyy string) (time.Time, error) {
	day, _ := strconv.Atoi(dd)
	month, _ := strconv.Atoi(mm)
	year, _ := strconv.Atoi(yyyy)

	if year < 2000 || year > 2100 {
		return time.Time{}, fmt.Errorf("year must be between 2000 and 2100")
	}
	d := endOfDay(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local))
	// time.Date normalises 31/02 into March
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, fmt.Errorf("no such date %s/%s/%s", dd, mm, yyyy)
	}
	return d, nil
}

func relativeDate(count, unit string, now time.Time) (time.Time, error) {
	n, err := strconv.Atoi(count)
	if err != nil || n < 1 || n > relativeLimits[unit] {
		return time.Time{}, fmt.Errorf("%ss must be between 1 and %d", unit, relativeLimits[unit])
	}

	switch unit {
	case "hour":
		return now.Add(time.Duration(n) * time.Hour), nil
	case "week":
		n *= 7
	}
	return endOfDay(now.AddDate(0, 0, n)), nil
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// daysBetween counts calendar days from a to b, ignoring clock time and DST.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// FormatDueDate describes a due date relative to today.
func FormatDueDate(due *time.Time) string {
	return FormatDueDateAt(due, time.Now())
}

// FormatDueDateAt is FormatDueDate relative to now.
func FormatDueDateAt(due *time.Time, now time.Time) string {
	if due == nil {
		return ""
	}

	date := due.Format("02/01/2006")
	switch days := daysBetween(now, due.In(now.Location())); {
	case days < 0:
		return fmt.Sprintf("⚠️ OVERDUE (%s)", date)
	case days == 0:
		return fmt.Sprintf("🔥 Due today (%s)", date)
	case days == 1:
		return fmt.Sprintf("📅 Due tomorrow (%s)", date)
	case days <= 7:
		return fmt.Sprintf("📅 Due %s (in %d days)", date, days)
	default:
		return fmt.Sprintf("📅 Due %s", date)
	}
}
