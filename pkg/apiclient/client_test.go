package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/pkg/board"
)

func TestMoveTaskSendsStatusAndToken(t *testing.T) {
	taskID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Fatalf("method = %s, want PATCH", r.Method)
		}
		if got := r.URL.Path; got != "/api/v1/tasks/"+taskID.String()+"/move" {
			t.Fatalf("path = %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("Authorization = %q, want bearer token", got)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["status"] != models.TaskCompleted {
			t.Fatalf("status = %s, want %s", body["status"], models.TaskCompleted)
		}

		json.NewEncoder(w).Encode(models.Task{ID: taskID, Status: models.TaskCompleted})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("test-token")

	task, err := c.MoveTask(taskID, models.TaskCompleted)
	if err != nil {
		t.Fatalf("MoveTask() error = %v", err)
	}
	if task.Status != models.TaskCompleted {
		t.Fatalf("Status = %s, want %s", task.Status, models.TaskCompleted)
	}
}

func TestAPIErrorDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"error": "no active subscription"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListTasks()
	if err == nil {
		t.Fatal("ListTasks() error = nil, want APIError")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusPaymentRequired {
		t.Fatalf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusPaymentRequired)
	}
	if apiErr.Message != "no active subscription" {
		t.Fatalf("Message = %q", apiErr.Message)
	}
}

func TestBoardDragWithClientMover(t *testing.T) {
	taskID := uuid.New()
	moveCalls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		moveCalls++
		json.NewEncoder(w).Encode(models.Task{ID: taskID, Name: "write report", Status: models.TaskInProgress})
	}))
	defer srv.Close()

	c := New(srv.URL)

	tasks := []models.Task{{ID: taskID, Name: "write report", Status: models.TaskPending}}
	b := board.New(tasks, models.TaskStatuses)

	if err := b.BeginDrag(taskID); err != nil {
		t.Fatalf("BeginDrag() error = %v", err)
	}
	moved, err := b.CompleteDrag(models.TaskInProgress, c.TaskMover())
	if err != nil {
		t.Fatalf("CompleteDrag() error = %v", err)
	}
	if !moved {
		t.Fatal("CompleteDrag() moved = false, want true")
	}
	if moveCalls != 1 {
		t.Fatalf("move calls = %d, want 1", moveCalls)
	}
	if got := b.Cards()[0].Status; got != models.TaskInProgress {
		t.Fatalf("local status = %s, want %s", got, models.TaskInProgress)
	}

	// Same-column drop never reaches the server
	if err := b.BeginDrag(taskID); err != nil {
		t.Fatalf("BeginDrag() error = %v", err)
	}
	moved, err = b.CompleteDrag(models.TaskInProgress, c.TaskMover())
	if err != nil {
		t.Fatalf("CompleteDrag() error = %v", err)
	}
	if moved {
		t.Fatal("CompleteDrag() moved = true, want false for same column")
	}
	if moveCalls != 1 {
		t.Fatalf("move calls = %d, want 1 after same-column drop", moveCalls)
	}
}
