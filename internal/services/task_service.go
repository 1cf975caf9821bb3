package services

import (
	"errors"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/pkg/board"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskService struct {
	taskRepo repositories.TaskRepo
	audit    *audit.Service
}

func NewTaskService(taskRepo repositories.TaskRepo, auditSvc *audit.Service) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		audit:    auditSvc,
	}
}

// CreateTask creates a task. New tasks land in the pending column
// unless a status is given.
func (s *TaskService) CreateTask(userID, clientID uuid.UUID, req *models.CreateTaskRequest) (*models.Task, error) {
	if req.Name == "" {
		return nil, errors.New("task name is required")
	}

	status := req.Status
	if status == "" {
		status = models.TaskPending
	}
	if !validStatus(status, models.TaskStatuses) {
		return nil, errors.New("invalid task status")
	}

	task := &models.Task{
		ClientID: clientID,
		Name:     req.Name,
		Status:   status,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "create", "task", task.ID.String(), nil, task)
	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(clientID uuid.UUID, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(clientID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("task not found")
		}
		return nil, err
	}
	return task, nil
}

// ListTasks returns all tasks for a client
func (s *TaskService) ListTasks(clientID uuid.UUID) ([]models.Task, error) {
	return s.taskRepo.List(clientID)
}

// TaskBoard returns tasks grouped into status columns
func (s *TaskService) TaskBoard(clientID uuid.UUID) ([]board.Column[models.Task], error) {
	tasks, err := s.taskRepo.List(clientID)
	if err != nil {
		return nil, err
	}
	return board.GroupByStatus(tasks, models.TaskStatuses), nil
}

// UpdateTask edits a task's name and/or status
func (s *TaskService) UpdateTask(userID, clientID uuid.UUID, taskID string, req *models.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.GetTask(clientID, taskID)
	if err != nil {
		return nil, err
	}
	before := *task

	if req.Name != nil {
		if *req.Name == "" {
			return nil, errors.New("task name is required")
		}
		task.Name = *req.Name
	}
	if req.Status != nil {
		if !validStatus(*req.Status, models.TaskStatuses) {
			return nil, errors.New("invalid task status")
		}
		task.Status = *req.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "update", "task", task.ID.String(), before, task)
	return task, nil
}

// MoveTask changes a task's board column. Moving onto the column the
// task already occupies returns the record unchanged with no write.
func (s *TaskService) MoveTask(userID, clientID uuid.UUID, taskID, targetStatus string) (*models.Task, error) {
	if !validStatus(targetStatus, models.TaskStatuses) {
		return nil, errors.New("invalid task status")
	}

	task, err := s.GetTask(clientID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == targetStatus {
		return task, nil
	}
	before := *task

	task.Status = targetStatus
	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "move", "task", task.ID.String(), before, task)
	return task, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(userID, clientID uuid.UUID, taskID string) error {
	task, err := s.GetTask(clientID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(clientID, taskID); err != nil {
		return err
	}

	s.audit.Record(userID, clientID, "delete", "task", task.ID.String(), task, nil)
	return nil
}

func validStatus(status string, statuses []string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
