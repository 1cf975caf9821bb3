package repositories

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	Create(n *models.Notification) error
	List(clientID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error)
	UnreadCount(clientID uuid.UUID) (int64, error)
	MarkRead(clientID uuid.UUID, id string) error
	MarkAllRead(clientID uuid.UUID) error
	Delete(clientID uuid.UUID, id string) error
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepo) List(clientID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := r.db.Where("client_id = ?", clientID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) UnreadCount(clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("client_id = ? AND read = ?", clientID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkRead(clientID uuid.UUID, id string) error {
	notifID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID: %w", err)
	}

	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND client_id = ?", notifID, clientID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(clientID uuid.UUID) error {
	return r.db.Model(&models.Notification{}).
		Where("client_id = ? AND read = ?", clientID, false).
		Update("read", true).Error
}

func (r *notificationRepo) Delete(clientID uuid.UUID, id string) error {
	notifID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID: %w", err)
	}

	result := r.db.Where("id = ? AND client_id = ?", notifID, clientID).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
