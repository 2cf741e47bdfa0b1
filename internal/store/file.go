package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/marcus/todos/internal/models"
)

const tasksFile = ".todos/tasks.json"

// FileStore persists the whole task list in a single JSON file. The file is
// read wholesale on List and rewritten wholesale (atomically) after every
// mutation. List preserves insertion order, so new tasks are appended.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a file store rooted at baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{
		path: filepath.Join(baseDir, tasksFile),
		now:  time.Now,
	}
}

// Ordering reports the file store's append ordering.
func (s *FileStore) Ordering() Ordering {
	return OrderAppend
}

// List reads the full task list from disk. A missing file is an empty list.
func (s *FileStore) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.load()
	if err != nil {
		return nil, wrapErr("list", err)
	}
	return tasks, nil
}

// Create appends a new task, assigning a clock-derived ID.
func (s *FileStore) Create(ctx context.Context, draft models.Draft) (*models.Task, error) {
	tasks, err := s.load()
	if err != nil {
		return nil, wrapErr("create", err)
	}

	now := s.now()
	task := models.Task{
		ID:        s.nextID(tasks, now),
		Text:      draft.Text,
		Completed: draft.Completed,
		Category:  draft.Category,
		DueDate:   draft.DueDate,
		CreatedAt: now,
	}

	tasks = append(tasks, task)
	if err := s.save(tasks); err != nil {
		return nil, wrapErr("create", err)
	}
	return &task, nil
}

// Update applies a partial update to the identified task.
func (s *FileStore) Update(ctx context.Context, id string, patch models.Patch) error {
	tasks, err := s.load()
	if err != nil {
		return wrapErr("update", err)
	}

	found := false
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if patch.Text != nil {
			tasks[i].Text = *patch.Text
		}
		if patch.Completed != nil {
			tasks[i].Completed = *patch.Completed
		}
		found = true
		break
	}
	if !found {
		return wrapErr("update", ErrNotFound)
	}

	return wrapErr("update", s.save(tasks))
}

// Delete removes the identified task.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	tasks, err := s.load()
	if err != nil {
		return wrapErr("delete", err)
	}

	kept := tasks[:0]
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return wrapErr("delete", ErrNotFound)
	}

	return wrapErr("delete", s.save(kept))
}

// nextID derives an ID from the wall clock, bumping until it is unique
// within the current list.
func (s *FileStore) nextID(tasks []models.Task, now time.Time) string {
	n := now.UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		taken := false
		for _, t := range tasks {
			if t.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		n++
	}
}

func (s *FileStore) load() ([]models.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// save rewrites the slot atomically: temp file in the same dir, then rename.
func (s *FileStore) save(tasks []models.Task) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "tasks-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}
