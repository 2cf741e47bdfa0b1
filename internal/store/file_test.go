package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcus/todos/internal/models"
)

func TestFileStore_CreateAndList(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	ctx := context.Background()

	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	task, err := s.Create(ctx, models.Draft{Text: "Buy milk", Category: "Home", DueDate: &due})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID == "" {
		t.Error("ID not assigned")
	}
	if task.CreatedAt.IsZero() {
		t.Error("CreatedAt not assigned")
	}

	tasks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("List returned %d tasks, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Text != "Buy milk" || got.Category != "Home" || got.Completed {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date = %v, want %v", got.DueDate, due)
	}

	// The slot file exists where the adapter says it does.
	if _, err := os.Stat(filepath.Join(dir, ".todos", "tasks.json")); err != nil {
		t.Errorf("slot file missing: %v", err)
	}
}

func TestFileStore_AppendOrdering(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	ctx := context.Background()

	if s.Ordering() != OrderAppend {
		t.Fatalf("Ordering() = %v, want OrderAppend", s.Ordering())
	}

	for _, text := range []string{"one", "two", "three"} {
		if _, err := s.Create(ctx, models.Draft{Text: text, Category: "General"}); err != nil {
			t.Fatalf("Create(%q) failed: %v", text, err)
		}
	}

	tasks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"one", "two", "three"}
	for i, w := range want {
		if tasks[i].Text != w {
			t.Errorf("tasks[%d].Text = %q, want %q", i, tasks[i].Text, w)
		}
	}
}

func TestFileStore_UniqueIDs(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		task, err := s.Create(ctx, models.Draft{Text: "t", Category: "General"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate ID %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestFileStore_Update(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	task, err := s.Create(ctx, models.Draft{Text: "before", Category: "General"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	text := "after"
	if err := s.Update(ctx, task.ID, models.Patch{Text: &text}); err != nil {
		t.Fatalf("Update text failed: %v", err)
	}
	done := true
	if err := s.Update(ctx, task.ID, models.Patch{Completed: &done}); err != nil {
		t.Fatalf("Update completed failed: %v", err)
	}

	tasks, _ := s.List(ctx)
	if tasks[0].Text != "after" || !tasks[0].Completed {
		t.Errorf("updates not applied: %+v", tasks[0])
	}
	if tasks[0].Category != "General" {
		t.Errorf("unrelated field changed: %+v", tasks[0])
	}
}

func TestFileStore_Delete(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	task, err := s.Create(ctx, models.Draft{Text: "x", Category: "General"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	tasks, _ := s.List(ctx)
	if len(tasks) != 0 {
		t.Errorf("List returned %d tasks after delete, want 0", len(tasks))
	}
}

func TestFileStore_NotFound(t *testing.T) {
	s := NewFileStore(t.TempDir())
	ctx := context.Background()

	text := "x"
	if err := s.Update(ctx, "missing", models.Patch{Text: &text}); err == nil {
		t.Error("Update of missing id succeeded")
	}
	if err := s.Delete(ctx, "missing"); err == nil {
		t.Error("Delete of missing id succeeded")
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1 := NewFileStore(dir)
	if _, err := s1.Create(ctx, models.Draft{Text: "durable", Category: "General"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	s2 := NewFileStore(dir)
	tasks, err := s2.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "durable" {
		t.Errorf("second instance sees %+v, want the durable task", tasks)
	}
}

func TestFileStore_EmptyOnMissingFile(t *testing.T) {
	s := NewFileStore(t.TempDir())
	tasks, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("List = %d tasks, want 0", len(tasks))
	}
}
