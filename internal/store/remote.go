package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/marcus/todos/internal/models"
)

// ErrUnauthorized indicates the server rejected the API key.
var ErrUnauthorized = errors.New("unauthorized")

// RemoteStore is an HTTP client for the todos task server. The wire format
// (snake_case field names, date-only due dates) is translated to the
// in-memory model here; the manager never sees it.
type RemoteStore struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewRemoteStore creates a remote store client.
func NewRemoteStore(baseURL, apiKey string) *RemoteStore {
	return &RemoteStore{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// taskPayload is the wire representation of a task.
type taskPayload struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Category  string `json:"category"`
	DueDate   string `json:"due_date,omitempty"`   // YYYY-MM-DD
	CreatedAt string `json:"created_at,omitempty"` // RFC 3339
}

// createRequest is the body for POST /v1/tasks.
type createRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Category  string `json:"category"`
	DueDate   string `json:"due_date,omitempty"`
}

// patchRequest is the body for PATCH /v1/tasks/{id}.
type patchRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Ordering reports the server's newest-first listing.
func (c *RemoteStore) Ordering() Ordering {
	return OrderNewestFirst
}

// List fetches all tasks from the server.
func (c *RemoteStore) List(ctx context.Context) ([]models.Task, error) {
	var payload []taskPayload
	if err := c.do(ctx, "GET", "/v1/tasks", nil, &payload); err != nil {
		return nil, wrapErr("list", err)
	}

	tasks := make([]models.Task, 0, len(payload))
	for _, p := range payload {
		t, err := p.toModel()
		if err != nil {
			return nil, wrapErr("list", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Create persists a new task on the server, which assigns ID and CreatedAt.
func (c *RemoteStore) Create(ctx context.Context, draft models.Draft) (*models.Task, error) {
	req := createRequest{
		Text:      draft.Text,
		Completed: draft.Completed,
		Category:  draft.Category,
	}
	if draft.DueDate != nil {
		req.DueDate = draft.DueDate.Format("2006-01-02")
	}

	var payload taskPayload
	if err := c.do(ctx, "POST", "/v1/tasks", req, &payload); err != nil {
		return nil, wrapErr("create", err)
	}
	task, err := payload.toModel()
	if err != nil {
		return nil, wrapErr("create", err)
	}
	return &task, nil
}

// Update applies a partial update to the identified task.
func (c *RemoteStore) Update(ctx context.Context, id string, patch models.Patch) error {
	req := patchRequest{Text: patch.Text, Completed: patch.Completed}
	return wrapErr("update", c.do(ctx, "PATCH", "/v1/tasks/"+id, req, nil))
}

// Delete removes the identified task.
func (c *RemoteStore) Delete(ctx context.Context, id string) error {
	return wrapErr("delete", c.do(ctx, "DELETE", "/v1/tasks/"+id, nil, nil))
}

func (p taskPayload) toModel() (models.Task, error) {
	t := models.Task{
		ID:        p.ID,
		Text:      p.Text,
		Completed: p.Completed,
		Category:  p.Category,
	}
	if p.DueDate != "" {
		due, err := time.ParseInLocation("2006-01-02", p.DueDate, time.Local)
		if err != nil {
			return models.Task{}, fmt.Errorf("parse due_date %q: %w", p.DueDate, err)
		}
		t.DueDate = &due
	}
	if p.CreatedAt != "" {
		created, err := time.Parse(time.RFC3339, p.CreatedAt)
		if err != nil {
			return models.Task{}, fmt.Errorf("parse created_at %q: %w", p.CreatedAt, err)
		}
		t.CreatedAt = created
	}
	return t, nil
}

// apiError is the standard error body from the server.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

// do executes a JSON request against the server.
func (c *RemoteStore) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var wrapped struct {
			Error apiError `json:"error"`
		}
		if json.Unmarshal(respBody, &wrapped) == nil && wrapped.Error.Code != "" {
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return fmt.Errorf("%w: %s", ErrUnauthorized, wrapped.Error.Message)
			case http.StatusNotFound:
				return fmt.Errorf("%w: %s", ErrNotFound, wrapped.Error.Message)
			default:
				return &wrapped.Error
			}
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
