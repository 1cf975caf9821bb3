package repositories

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepo interface {
	GetByID(id uuid.UUID) (*models.Client, error)
	Update(client *models.Client) error
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
}

type clientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) ClientRepo {
	return &clientRepo{db: db}
}

func (r *clientRepo) GetByID(id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

func (r *clientRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.Model(&models.Client{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("client not found: %s", id)
	}
	return nil
}
