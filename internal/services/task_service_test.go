package services

import (
	"path/filepath"
	"testing"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "service-test.db")
	db, err := database.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTaskService(t *testing.T) (*TaskService, uuid.UUID) {
	t.Helper()

	db := newTestDB(t, &models.Client{}, &models.Task{}, &audit.AuditLog{})

	client := models.Client{Name: "Acme"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	svc := NewTaskService(repositories.NewTaskRepo(db), audit.NewService(db))
	return svc, client.ID
}

func TestCreateTaskDefaultsToPending(t *testing.T) {
	svc, clientID := newTaskService(t)
	userID := uuid.New()

	task, err := svc.CreateTask(userID, clientID, &models.CreateTaskRequest{Name: "Write docs"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Status != models.TaskPending {
		t.Fatalf("status = %s, want %s", task.Status, models.TaskPending)
	}
	if task.ID == uuid.Nil {
		t.Fatal("task ID not assigned")
	}
}

func TestMoveTaskSameColumnIsNoOp(t *testing.T) {
	svc, clientID := newTaskService(t)
	userID := uuid.New()

	task, err := svc.CreateTask(userID, clientID, &models.CreateTaskRequest{Name: "Ship it"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	moved, err := svc.MoveTask(userID, clientID, task.ID.String(), models.TaskPending)
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if moved.Status != models.TaskPending {
		t.Fatalf("status = %s, want %s", moved.Status, models.TaskPending)
	}
	if !moved.UpdatedAt.Equal(task.UpdatedAt) {
		t.Fatal("same-column move must not write the record")
	}
}

func TestMoveTaskChangesColumn(t *testing.T) {
	svc, clientID := newTaskService(t)
	userID := uuid.New()

	task, err := svc.CreateTask(userID, clientID, &models.CreateTaskRequest{Name: "Ship it"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	moved, err := svc.MoveTask(userID, clientID, task.ID.String(), models.TaskCompleted)
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if moved.Status != models.TaskCompleted {
		t.Fatalf("status = %s, want %s", moved.Status, models.TaskCompleted)
	}

	if _, err := svc.MoveTask(userID, clientID, task.ID.String(), "archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestTaskBoardGroupsAllColumns(t *testing.T) {
	svc, clientID := newTaskService(t)
	userID := uuid.New()

	for _, status := range []string{models.TaskPending, models.TaskInProgress, models.TaskCompleted} {
		_, err := svc.CreateTask(userID, clientID, &models.CreateTaskRequest{Name: "t-" + status, Status: status})
		if err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
	}

	columns, err := svc.TaskBoard(clientID)
	if err != nil {
		t.Fatalf("TaskBoard: %v", err)
	}
	if len(columns) != len(models.TaskStatuses) {
		t.Fatalf("got %d columns, want %d", len(columns), len(models.TaskStatuses))
	}
	for _, col := range columns {
		if len(col.Cards) != 1 {
			t.Fatalf("column %s has %d cards, want 1", col.Status, len(col.Cards))
		}
	}
}

func TestTaskTenantScoping(t *testing.T) {
	svc, clientID := newTaskService(t)
	userID := uuid.New()

	task, err := svc.CreateTask(userID, clientID, &models.CreateTaskRequest{Name: "Private"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	otherClient := uuid.New()
	if _, err := svc.GetTask(otherClient, task.ID.String()); err == nil {
		t.Fatal("task must not be visible to another client")
	}
}
