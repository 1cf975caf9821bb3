package services

import (
	"errors"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/events"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	notifRepo repositories.NotificationRepo
	bus       *events.Bus
}

func NewNotificationService(notifRepo repositories.NotificationRepo, bus *events.Bus) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		bus:       bus,
	}
}

// Notify persists a notification and pushes it onto the live feed
func (s *NotificationService) Notify(clientID uuid.UUID, title, body string) (*models.Notification, error) {
	if title == "" {
		return nil, errors.New("notification title is required")
	}

	notification := &models.Notification{
		ClientID: clientID,
		Title:    title,
		Body:     body,
	}
	if err := s.notifRepo.Create(notification); err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{
		Type:     events.TypeNotification,
		ClientID: clientID,
		Payload:  notification,
	})
	return notification, nil
}

// List returns the client's notifications, newest first
func (s *NotificationService) List(clientID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error) {
	return s.notifRepo.List(clientID, unreadOnly, limit)
}

// UnreadCount returns the badge count
func (s *NotificationService) UnreadCount(clientID uuid.UUID) (int64, error) {
	return s.notifRepo.UnreadCount(clientID)
}

// MarkRead marks one notification read
func (s *NotificationService) MarkRead(clientID uuid.UUID, notifID string) error {
	if err := s.notifRepo.MarkRead(clientID, notifID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("notification not found")
		}
		return err
	}
	return nil
}

// MarkAllRead clears the unread badge
func (s *NotificationService) MarkAllRead(clientID uuid.UUID) error {
	return s.notifRepo.MarkAllRead(clientID)
}

// Delete removes a notification
func (s *NotificationService) Delete(clientID uuid.UUID, notifID string) error {
	if err := s.notifRepo.Delete(clientID, notifID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("notification not found")
		}
		return err
	}
	return nil
}
