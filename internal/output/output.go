// Package output provides styled terminal output helpers (success, error,
// task formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/todos/internal/models"
)

var (
	// Styles
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Checkbox returns the completion marker for a task.
func Checkbox(completed bool) string {
	if completed {
		return successStyle.Render("[x]")
	}
	return "[ ]"
}

// FormatCategory formats a category tag.
func FormatCategory(c string) string {
	return categoryStyle.Render("#" + c)
}

// FormatDue formats a due date, highlighting overdue tasks.
func FormatDue(t *models.Task, now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	due := t.DueDate.Format("2006-01-02")
	if models.Overdue(t, now) {
		return overdueStyle.Render("due " + due + " (overdue)")
	}
	return subtleStyle.Render("due " + due)
}

// FormatTask formats a task as a single list line.
func FormatTask(t *models.Task, now time.Time) string {
	parts := []string{Checkbox(t.Completed), titleStyle.Render(t.ID)}

	if t.Completed {
		parts = append(parts, doneStyle.Render(t.Text))
	} else {
		parts = append(parts, t.Text)
	}

	parts = append(parts, FormatCategory(t.Category))
	if due := FormatDue(t, now); due != "" {
		parts = append(parts, due)
	}
	parts = append(parts, subtleStyle.Render("created "+FormatTimeAgo(t.CreatedAt, now)))

	return strings.Join(parts, "  ")
}

// FormatStats formats filtered-view counts on one line.
func FormatStats(s models.Stats) string {
	return fmt.Sprintf("Total: %d  Active: %d  Completed: %d", s.Total, s.Active, s.Completed)
}

// FormatTimeAgo renders how long ago t was relative to now. Anything older
// than a week falls back to the plain date.
func FormatTimeAgo(t, now time.Time) string {
	age := now.Sub(t)

	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return pluralAgo(int(age.Minutes()), "m")
	case age < 24*time.Hour:
		return pluralAgo(int(age.Hours()), "h")
	case age < 7*24*time.Hour:
		return pluralAgo(int(age.Hours()/24), "d")
	default:
		return t.Format("2006-01-02")
	}
}

func pluralAgo(n int, unit string) string {
	return fmt.Sprintf("%d%s ago", n, unit)
}
