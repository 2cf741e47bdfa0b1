package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marcus/todos/internal/models"
	_ "modernc.org/sqlite"
)

const (
	dbFile   = ".todos/tasks.db"
	idPrefix = "tk-"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	text       TEXT NOT NULL CHECK (text <> ''),
	completed  INTEGER NOT NULL DEFAULT 0,
	category   TEXT NOT NULL CHECK (category <> ''),
	due_date   TIMESTAMP,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);
`

// SQLiteStore persists tasks in a local SQLite database. List returns
// newest-first, so freshly created tasks belong at the front.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (creating if necessary) the task database under baseDir.
func OpenSQLite(baseDir string) (*SQLiteStore, error) {
	dbPath := filepath.Join(baseDir, dbFile)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL allows concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA synchronous=NORMAL")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Ordering reports the SQLite store's newest-first ordering.
func (s *SQLiteStore) Ordering() Ordering {
	return OrderNewestFirst
}

// List returns all tasks, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]models.Task, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, text, completed, category, due_date, created_at
		FROM tasks
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, wrapErr("list", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var due sql.NullTime
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.Category, &due, &t.CreatedAt); err != nil {
			return nil, wrapErr("list", err)
		}
		if due.Valid {
			d := due.Time
			t.DueDate = &d
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list", err)
	}
	return tasks, nil
}

// Create inserts a new task with a generated ID, retrying on the rare
// ID collision (6 hex chars = 16.7M keyspace).
func (s *SQLiteStore) Create(ctx context.Context, draft models.Draft) (*models.Task, error) {
	task := models.Task{
		Text:      draft.Text,
		Completed: draft.Completed,
		Category:  draft.Category,
		DueDate:   draft.DueDate,
		CreatedAt: time.Now(),
	}

	const maxRetries = 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		id, err := generateID()
		if err != nil {
			return nil, wrapErr("create", err)
		}
		task.ID = id

		_, err = s.conn.ExecContext(ctx, `
			INSERT INTO tasks (id, text, completed, category, due_date, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, task.ID, task.Text, task.Completed, task.Category, nullableTime(task.DueDate), task.CreatedAt)

		if err == nil {
			return &task, nil
		}
		if !strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, wrapErr("create", err)
		}
	}
	return nil, wrapErr("create", fmt.Errorf("failed to generate unique task ID after %d attempts", maxRetries))
}

// Update applies a partial update to the identified task.
func (s *SQLiteStore) Update(ctx context.Context, id string, patch models.Patch) error {
	var (
		sets []string
		args []any
	)
	if patch.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *patch.Text)
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *patch.Completed)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := s.conn.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return wrapErr("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("update", err)
	}
	if n == 0 {
		return wrapErr("update", ErrNotFound)
	}
	return nil
}

// Delete removes the identified task.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return wrapErr("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("delete", err)
	}
	if n == 0 {
		return wrapErr("delete", ErrNotFound)
	}
	return nil
}

// generateID generates a random task ID
func generateID() (string, error) {
	bytes := make([]byte, 3) // 6 hex characters - balances brevity with collision resistance
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return idPrefix + hex.EncodeToString(bytes), nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
