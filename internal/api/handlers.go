package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/marcus/todos/internal/models"
	"github.com/marcus/todos/internal/store"
)

// taskResponse is the wire representation of a task: snake_case field
// names, date-only due dates.
type taskResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Category  string `json:"category"`
	DueDate   string `json:"due_date,omitempty"`
	CreatedAt string `json:"created_at"`
}

// createTaskRequest is the body for POST /v1/tasks.
type createTaskRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Category  string `json:"category"`
	DueDate   string `json:"due_date,omitempty"`
}

// patchTaskRequest is the body for PATCH /v1/tasks/{id}.
type patchTaskRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func toResponse(t models.Task) taskResponse {
	resp := taskResponse{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Category:  t.Category,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format("2006-01-02")
	}
	return resp
}

// handleListTasks returns all tasks, newest first.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.List(r.Context())
	if err != nil {
		logFor(r.Context()).Error("list tasks", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "list tasks")
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCreateTask persists a new task, assigning its ID and created_at.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "text is required")
		return
	}

	draft := models.Draft{
		Text:      req.Text,
		Completed: req.Completed,
		Category:  models.NormalizeCategory(req.Category),
	}
	if req.DueDate != "" {
		due, err := time.ParseInLocation("2006-01-02", req.DueDate, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "due_date must be YYYY-MM-DD")
			return
		}
		draft.DueDate = &due
	}

	task, err := s.store.Create(r.Context(), draft)
	if err != nil {
		logFor(r.Context()).Error("create task", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "create task")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(*task))
}

// handleUpdateTask applies a partial update to the identified task.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req patchTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if req.Text != nil {
		trimmed := strings.TrimSpace(*req.Text)
		if trimmed == "" {
			writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "text must not be empty")
			return
		}
		req.Text = &trimmed
	}
	if req.Text == nil && req.Completed == nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "nothing to update")
		return
	}

	err := s.store.Update(r.Context(), id, models.Patch{Text: req.Text, Completed: req.Completed})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "task not found")
		return
	}
	if err != nil {
		logFor(r.Context()).Error("update task", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "update task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDeleteTask removes the identified task.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "task not found")
		return
	}
	if err != nil {
		logFor(r.Context()).Error("delete task", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "delete task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
