package cmd

import (
	"context"
	"testing"

	"github.com/marcus/todos/internal/config"
	"github.com/marcus/todos/internal/manager"
	"github.com/marcus/todos/internal/store"
)

// TestOpenStoreDefaultsToFile tests that an unconfigured directory gets the file backend
func TestOpenStoreDefaultsToFile(t *testing.T) {
	dir := t.TempDir()

	st, cleanup, err := openStore(dir)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer cleanup()

	if _, ok := st.(*store.FileStore); !ok {
		t.Errorf("Expected *store.FileStore, got %T", st)
	}
	if st.Ordering() != store.OrderAppend {
		t.Errorf("Expected append ordering for file backend, got %v", st.Ordering())
	}
}

// TestOpenStoreSQLiteBackend tests backend selection from saved config
func TestOpenStoreSQLiteBackend(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{Backend: config.BackendSQLite}
	if err := config.Save(dir, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	st, cleanup, err := openStore(dir)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer cleanup()

	if _, ok := st.(*store.SQLiteStore); !ok {
		t.Errorf("Expected *store.SQLiteStore, got %T", st)
	}
	if st.Ordering() != store.OrderNewestFirst {
		t.Errorf("Expected newest-first ordering for sqlite backend, got %v", st.Ordering())
	}
}

// TestOpenStoreRemoteRequiresURL tests that a remote backend without a URL is rejected
func TestOpenStoreRemoteRequiresURL(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{Backend: config.BackendRemote}
	if err := config.Save(dir, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, _, err := openStore(dir); err == nil {
		t.Error("Expected error for remote backend without URL")
	}
}

// TestManagerRoundTripThroughConfiguredStore tests add/list through the configured backend
func TestManagerRoundTripThroughConfiguredStore(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	st, cleanup, err := openStore(dir)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer cleanup()

	mgr := manager.New(st)
	if err := mgr.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	task, err := mgr.Add(ctx, "Write release notes", "Work", nil)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task.ID == "" {
		t.Error("Expected task ID to be assigned")
	}

	// A fresh manager over the same directory sees the persisted task.
	st2, cleanup2, err := openStore(dir)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer cleanup2()

	mgr2 := manager.New(st2)
	if err := mgr2.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	tasks := mgr2.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Text != "Write release notes" {
		t.Errorf("Text mismatch: got %q", tasks[0].Text)
	}
	if tasks[0].Category != "Work" {
		t.Errorf("Category mismatch: got %q", tasks[0].Category)
	}
}
