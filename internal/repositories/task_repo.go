package repositories

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepo interface {
	Create(task *models.Task) error
	GetByID(clientID uuid.UUID, id string) (*models.Task, error)
	List(clientID uuid.UUID) ([]models.Task, error)
	Update(task *models.Task) error
	Delete(clientID uuid.UUID, id string) error
}

type taskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepo) GetByID(clientID uuid.UUID, id string) (*models.Task, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID: %w", err)
	}

	var task models.Task
	err = r.db.Where("id = ? AND client_id = ?", taskID, clientID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) List(clientID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

func (r *taskRepo) Delete(clientID uuid.UUID, id string) error {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}

	result := r.db.Where("id = ? AND client_id = ?", taskID, clientID).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
