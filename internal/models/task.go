package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses, in board column order
const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)

// TaskStatuses is the column order for the tasks board
var TaskStatuses = []string{TaskPending, TaskInProgress, TaskCompleted}

// Task is a simple to-do card on the tasks board
type Task struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Name   string `gorm:"type:text;not null" json:"name"`
	Status string `gorm:"type:text;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Task) TableName() string {
	return "dash_tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// GetID implements board.Card
func (t Task) GetID() uuid.UUID { return t.ID }

// GetStatus implements board.Card
func (t Task) GetStatus() string { return t.Status }

// CreateTaskRequest creates a task (lands in the pending column)
type CreateTaskRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=200"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed"`
}

// UpdateTaskRequest updates name and/or status
type UpdateTaskRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed"`
}
