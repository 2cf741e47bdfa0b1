package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marcus/todos/internal/models"
	"github.com/marcus/todos/internal/store"
)

func newTestServer(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()
	st, err := store.OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	s := NewServer(Config{APIKey: apiKey}, st)
	srv := httptest.NewServer(s.routes())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, apiKey string) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestTaskCRUD(t *testing.T) {
	srv := newTestServer(t, "")

	// Create
	resp, created := doJSON(t, "POST", srv.URL+"/v1/tasks", map[string]any{
		"text":     "Buy milk",
		"category": "",
		"due_date": "2026-03-01",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("create did not assign an id")
	}
	if created["category"] != "General" {
		t.Errorf("category = %v, want General (defaulted)", created["category"])
	}
	if created["due_date"] != "2026-03-01" {
		t.Errorf("due_date = %v, want 2026-03-01", created["due_date"])
	}
	if created["created_at"] == nil {
		t.Error("created_at missing")
	}

	// List
	req, _ := http.NewRequest("GET", srv.URL+"/v1/tasks", nil)
	listResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var tasks []map[string]any
	json.NewDecoder(listResp.Body).Decode(&tasks)
	listResp.Body.Close()
	if len(tasks) != 1 || tasks[0]["id"] != id {
		t.Fatalf("list = %v, want the created task", tasks)
	}

	// Patch completed
	resp, _ = doJSON(t, "PATCH", srv.URL+"/v1/tasks/"+id, map[string]any{"completed": true}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch status = %d, want 200", resp.StatusCode)
	}

	// Delete
	resp, _ = doJSON(t, "DELETE", srv.URL+"/v1/tasks/"+id, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}

	// Deleting again is a 404 at the HTTP boundary.
	resp, errBody := doJSON(t, "DELETE", srv.URL+"/v1/tasks/"+id, nil, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
	if errObj, ok := errBody["error"].(map[string]any); !ok || errObj["code"] != ErrCodeNotFound {
		t.Errorf("error body = %v, want code %q", errBody, ErrCodeNotFound)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	srv := newTestServer(t, "")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"empty text", map[string]any{"text": ""}},
		{"whitespace text", map[string]any{"text": "   "}},
		{"bad due date", map[string]any{"text": "x", "due_date": "not-a-date"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, "POST", srv.URL+"/v1/tasks", tt.body, "")
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if errObj, ok := body["error"].(map[string]any); !ok || errObj["code"] != ErrCodeBadRequest {
				t.Errorf("error body = %v", body)
			}
		})
	}
}

func TestUpdateTask_Validation(t *testing.T) {
	srv := newTestServer(t, "")

	_, created := doJSON(t, "POST", srv.URL+"/v1/tasks", map[string]any{"text": "x"}, "")
	id := created["id"].(string)

	// Text cannot be blanked out.
	resp, _ := doJSON(t, "PATCH", srv.URL+"/v1/tasks/"+id, map[string]any{"text": "  "}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank text patch status = %d, want 400", resp.StatusCode)
	}

	// An empty patch is rejected.
	resp, _ = doJSON(t, "PATCH", srv.URL+"/v1/tasks/"+id, map[string]any{}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty patch status = %d, want 400", resp.StatusCode)
	}
}

func TestAuth(t *testing.T) {
	srv := newTestServer(t, "secret")

	resp, body := doJSON(t, "POST", srv.URL+"/v1/tasks", map[string]any{"text": "x"}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", resp.StatusCode)
	}
	if errObj, ok := body["error"].(map[string]any); !ok || errObj["code"] != ErrCodeUnauthorized {
		t.Errorf("error body = %v", body)
	}

	resp, _ = doJSON(t, "POST", srv.URL+"/v1/tasks", map[string]any{"text": "x"}, "secret")
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("authenticated status = %d, want 201", resp.StatusCode)
	}

	// Health stays public.
	healthResp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	healthResp.Body.Close()
	if healthResp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", healthResp.StatusCode)
	}
}

func TestRemoteStoreAgainstServer(t *testing.T) {
	srv := newTestServer(t, "secret")
	c := store.NewRemoteStore(srv.URL, "secret")
	ctx := t.Context()

	task, err := c.Create(ctx, models.Draft{Text: "End to end", Category: "Work"})
	if err != nil {
		t.Fatalf("Create through client failed: %v", err)
	}

	tasks, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List through client failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID || tasks[0].Category != "Work" {
		t.Errorf("round trip through server = %+v", tasks)
	}

	if err := c.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete through client failed: %v", err)
	}
}
