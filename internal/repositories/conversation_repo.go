package repositories

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepo interface {
	Create(conv *models.Conversation) error
	GetByID(clientID uuid.UUID, id string) (*models.Conversation, error)
	List(clientID uuid.UUID) ([]models.Conversation, error)
	Touch(id uuid.UUID) error
	Delete(clientID uuid.UUID, id string) error

	AddMessage(msg *models.Message) error
	ListMessages(conversationID uuid.UUID) ([]models.Message, error)
	RecentMessages(conversationID uuid.UUID, limit int) ([]models.Message, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(conv *models.Conversation) error {
	return r.db.Create(conv).Error
}

func (r *conversationRepo) GetByID(clientID uuid.UUID, id string) (*models.Conversation, error) {
	convID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid conversation ID: %w", err)
	}

	var conv models.Conversation
	err = r.db.Where("id = ? AND client_id = ?", convID, clientID).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepo) List(clientID uuid.UUID) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.Where("client_id = ?", clientID).
		Order("updated_at DESC").
		Find(&convs).Error
	return convs, err
}

// Touch bumps updated_at so the thread surfaces at the top of the list
func (r *conversationRepo) Touch(id uuid.UUID) error {
	return r.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (r *conversationRepo) Delete(clientID uuid.UUID, id string) error {
	convID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid conversation ID: %w", err)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", convID).Delete(&models.Message{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND client_id = ?", convID, clientID).Delete(&models.Conversation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *conversationRepo) AddMessage(msg *models.Message) error {
	return r.db.Create(msg).Error
}

func (r *conversationRepo) ListMessages(conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// RecentMessages returns the last N turns in chronological order, for
// building the LLM context window
func (r *conversationRepo) RecentMessages(conversationID uuid.UUID, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
