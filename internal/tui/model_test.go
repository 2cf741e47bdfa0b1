package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/todos/internal/manager"
	"github.com/marcus/todos/internal/store"
)

func newTestModel(t *testing.T) (Model, *manager.Manager) {
	t.Helper()
	mgr := manager.New(store.NewFileStore(t.TempDir()))
	if err := mgr.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return New(mgr), mgr
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step applies a key and runs any resulting command to completion.
func step(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, cmd := m.Update(key(s))
	model := next.(Model)
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		next, cmd = model.Update(msg)
		model = next.(Model)
	}
	return model
}

func TestAddFlow(t *testing.T) {
	m, mgr := newTestModel(t)

	m = step(t, m, "a")
	if m.mode != modeAdd {
		t.Fatalf("mode = %v, want modeAdd", m.mode)
	}
	m.input.SetValue("Buy milk")
	m = step(t, m, "enter")

	if m.err != nil {
		t.Fatalf("add reported error: %v", m.err)
	}
	tasks := mgr.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("tasks = %+v, want the added task", tasks)
	}
	if tasks[0].Category != "General" {
		t.Errorf("category = %q, want General", tasks[0].Category)
	}
}

func TestToggleAndDelete(t *testing.T) {
	m, mgr := newTestModel(t)
	if _, err := mgr.Add(context.Background(), "one", "", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Add(context.Background(), "two", "", nil); err != nil {
		t.Fatal(err)
	}

	m = step(t, m, " ")
	if !mgr.Tasks()[0].Completed {
		t.Error("space did not toggle the selected task")
	}

	m = step(t, m, "j")
	m = step(t, m, "d")
	tasks := mgr.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "one" {
		t.Errorf("tasks after delete = %+v, want only \"one\"", tasks)
	}
}

func TestEditFlow(t *testing.T) {
	m, mgr := newTestModel(t)
	if _, err := mgr.Add(context.Background(), "draft me", "", nil); err != nil {
		t.Fatal(err)
	}

	m = step(t, m, "e")
	if m.mode != modeEdit {
		t.Fatalf("mode = %v, want modeEdit", m.mode)
	}
	if m.input.Value() != "draft me" {
		t.Errorf("input seeded with %q, want current text", m.input.Value())
	}

	// Esc discards the draft.
	m = step(t, m, "esc")
	if _, _, editing := mgr.Editing(); editing {
		t.Error("still in edit mode after esc")
	}
	if mgr.Tasks()[0].Text != "draft me" {
		t.Errorf("esc mutated text: %q", mgr.Tasks()[0].Text)
	}

	// Enter saves the draft.
	m = step(t, m, "e")
	m.input.SetValue("draft me!")
	m = step(t, m, "enter")
	if got := mgr.Tasks()[0].Text; got != "draft me!" {
		t.Errorf("text after save = %q, want %q", got, "draft me!")
	}
}

func TestFilterCycle(t *testing.T) {
	m, mgr := newTestModel(t)
	ctx := context.Background()
	mgr.Add(ctx, "a", "Work", nil)
	mgr.Add(ctx, "b", "Home", nil)

	m = step(t, m, "f")
	if got := mgr.Filter(); got != "Work" {
		t.Errorf("filter after one cycle = %q, want Work", got)
	}
	m = step(t, m, "f")
	if got := mgr.Filter(); got != "Home" {
		t.Errorf("filter after two cycles = %q, want Home", got)
	}
	m = step(t, m, "f")
	if got := mgr.Filter(); got != "all" {
		t.Errorf("filter wrapped to %q, want all", got)
	}
}
