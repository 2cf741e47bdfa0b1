// Package store defines the durable persistence contract the task manager
// depends on, with three conforming implementations: a JSON-file slot, a
// local SQLite database, and an HTTP client for the remote task server.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcus/todos/internal/models"
)

// Ordering describes how a store's List orders records, which determines
// where a freshly created task belongs in the caller's collection.
type Ordering int

const (
	// OrderAppend means List preserves insertion order; new tasks go last.
	OrderAppend Ordering = iota
	// OrderNewestFirst means List sorts by creation time descending; new
	// tasks go first.
	OrderNewestFirst
)

// ErrNotFound indicates the identified record does not exist in the store.
var ErrNotFound = errors.New("task not found")

// Store is the persistence capability behind the task manager.
type Store interface {
	// Ordering reports the ordering contract of List.
	Ordering() Ordering
	// List returns all tasks in store order.
	List(ctx context.Context) ([]models.Task, error)
	// Create persists a new task, assigning ID and CreatedAt, and returns
	// the fully populated record.
	Create(ctx context.Context, draft models.Draft) (*models.Task, error)
	// Update applies a partial update to the identified record.
	Update(ctx context.Context, id string, patch models.Patch) error
	// Delete removes the identified record.
	Delete(ctx context.Context, id string) error
}

// Error wraps any failure from a store operation so callers can
// distinguish persistence faults from everything else.
type Error struct {
	Op  string // list, create, update, delete
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapErr wraps err in a *Error unless it is nil.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
