package models

import (
	"strings"
	"time"
)

// DefaultCategory is assigned when a task is created with no category.
const DefaultCategory = "General"

// FilterAll is the sentinel category filter matching every task.
const FilterAll = "all"

// Task represents a single to-do item.
type Task struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Category  string     `json:"category"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Draft holds the fields the caller supplies when creating a task.
// The store assigns ID and CreatedAt.
type Draft struct {
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Category  string     `json:"category"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

// Patch is a partial update. Only non-nil fields are applied; in this
// system a single patch carries either Text or Completed, never both.
type Patch struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Stats holds counts over a task list.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// NormalizeCategory trims a user-supplied category, falling back to the
// default when empty.
func NormalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return DefaultCategory
	}
	return c
}

// Overdue reports whether a task's due date has passed as of now.
// A task due earlier on the current calendar day is not overdue; the day
// must actually have ended. Calendar comparison uses now's location.
func Overdue(t *Task, now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	due := *t.DueDate
	if !due.Before(now) {
		return false
	}
	dy, dm, dd := due.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return dy != ny || dm != nm || dd != nd
}
