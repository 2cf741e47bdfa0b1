// Package manager owns the authoritative in-memory task collection and
// keeps it in step with a durable store. Every mutation persists first and
// touches memory only once the store has confirmed, so memory can never
// drift ahead of what is on disk or on the server.
package manager

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/marcus/todos/internal/models"
	"github.com/marcus/todos/internal/store"
)

// Manager is the task state manager. All operations are safe for concurrent
// use; mutations are serialized so each one fully completes or fully fails
// before the next is accepted.
type Manager struct {
	store store.Store

	mu      sync.Mutex
	tasks   []models.Task
	filter  string
	editing *editState
}

// editState is the transient "currently editing" mode. At most one task is
// in this mode; it is never persisted.
type editState struct {
	id    string
	draft string
}

// New creates a manager backed by the given store. Call Initialize before
// using it.
func New(s store.Store) *Manager {
	return &Manager{
		store:  s,
		filter: models.FilterAll,
	}
}

// Initialize loads the full task collection from the store, replacing any
// in-memory state. Calling it again re-syncs from the store.
func (m *Manager) Initialize(ctx context.Context) error {
	tasks, err := m.store.List(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = tasks
	return nil
}

// Add creates a new task. Empty text (after trimming) is a silent no-op and
// returns (nil, nil). The category defaults to "General" when blank. The
// task is persisted first; on store failure memory is left untouched.
func (m *Manager) Add(ctx context.Context, text, category string, due *time.Time) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, err := m.store.Create(ctx, models.Draft{
		Text:     text,
		Category: models.NormalizeCategory(category),
		DueDate:  due,
	})
	if err != nil {
		return nil, err
	}

	// Insert where the store's List would place it.
	if m.store.Ordering() == store.OrderNewestFirst {
		m.tasks = append([]models.Task{*task}, m.tasks...)
	} else {
		m.tasks = append(m.tasks, *task)
	}
	return task, nil
}

// Delete removes the identified task from the store, then from memory.
// An absent id is a no-op, not an error.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx < 0 {
		return nil
	}

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}

	m.tasks = append(m.tasks[:idx], m.tasks[idx+1:]...)
	if m.editing != nil && m.editing.id == id {
		m.editing = nil
	}
	return nil
}

// ToggleCompleted flips the completion state of the identified task,
// persisting the new value before updating memory. An absent id is a no-op.
func (m *Manager) ToggleCompleted(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx < 0 {
		return nil
	}

	next := !m.tasks[idx].Completed
	if err := m.store.Update(ctx, id, models.Patch{Completed: &next}); err != nil {
		return err
	}

	m.tasks[idx].Completed = next
	return nil
}

// EditText replaces the task's text, leaving every other field untouched.
// Empty text (after trimming) or an absent id is a silent no-op.
func (m *Manager) EditText(ctx context.Context, id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editText(ctx, id, text)
}

// editText is EditText with the lock already held and text already trimmed.
func (m *Manager) editText(ctx context.Context, id, text string) error {
	idx := m.index(id)
	if idx < 0 {
		return nil
	}

	if err := m.store.Update(ctx, id, models.Patch{Text: &text}); err != nil {
		return err
	}

	m.tasks[idx].Text = text
	return nil
}

// SetFilter sets the current category filter. Any string is accepted,
// including categories no task has; the filtered view is then empty.
func (m *Manager) SetFilter(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = category
}

// Filter returns the current category filter.
func (m *Manager) Filter() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter
}

// Tasks returns a snapshot of the full collection in store order.
func (m *Manager) Tasks() []models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Categories returns "all" followed by the distinct categories in the
// collection, in order of first appearance.
func (m *Manager) Categories() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	cats := []string{models.FilterAll}
	seen := map[string]bool{}
	for _, t := range m.tasks {
		if seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		cats = append(cats, t.Category)
	}
	return cats
}

// Filtered returns the tasks matching the current filter: everything for
// "all", otherwise a case-sensitive exact category match.
func (m *Manager) Filtered() []models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filtered()
}

func (m *Manager) filtered() []models.Task {
	if m.filter == models.FilterAll {
		out := make([]models.Task, len(m.tasks))
		copy(out, m.tasks)
		return out
	}
	var out []models.Task
	for _, t := range m.tasks {
		if t.Category == m.filter {
			out = append(out, t)
		}
	}
	return out
}

// Stats returns counts over the filtered (not full) collection.
func (m *Manager) Stats() models.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var s models.Stats
	for _, t := range m.filtered() {
		s.Total++
		if t.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	return s
}

// Overdue reports whether the task's due date has passed, with the same-day
// grace rule: a task due today is never overdue, whatever the time.
func (m *Manager) Overdue(t *models.Task) bool {
	return models.Overdue(t, time.Now())
}

// StartEdit begins editing the identified task, seeding the draft with its
// current text. Any in-progress draft on another task is discarded, not
// saved. An absent id is a no-op.
func (m *Manager) StartEdit(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx < 0 {
		return
	}
	m.editing = &editState{id: id, draft: m.tasks[idx].Text}
}

// SetDraft replaces the in-progress draft text. No-op unless editing.
func (m *Manager) SetDraft(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editing != nil {
		m.editing.draft = text
	}
}

// Editing returns the id and draft of the task being edited, if any.
func (m *Manager) Editing() (id, draft string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editing == nil {
		return "", "", false
	}
	return m.editing.id, m.editing.draft, true
}

// SaveEdit commits the in-progress draft via EditText and leaves edit mode.
// An empty draft keeps the edit open (same validation as EditText); a store
// failure also keeps it open so nothing is silently lost.
func (m *Manager) SaveEdit(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.editing == nil {
		return nil
	}
	draft := strings.TrimSpace(m.editing.draft)
	if draft == "" {
		return nil
	}

	if err := m.editText(ctx, m.editing.id, draft); err != nil {
		return err
	}
	m.editing = nil
	return nil
}

// CancelEdit discards the in-progress draft without mutating anything.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editing = nil
}

// index returns the position of id in the collection, or -1. Caller holds
// the lock.
func (m *Manager) index(id string) int {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
