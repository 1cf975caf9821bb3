package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssistantConfig holds per-client assistant behavior settings.
// Created with defaults during onboarding.
type AssistantConfig struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"client_id"`

	Provider    string  `gorm:"type:text;default:'openai'" json:"provider"`
	Model       string  `gorm:"type:text" json:"model,omitempty"`
	Temperature float32 `gorm:"type:real;default:0.7" json:"temperature"`
	MaxTokens   int     `gorm:"type:integer;default:1024" json:"max_tokens"`

	Tone         string `gorm:"type:text;default:'friendly'" json:"tone"`
	Instructions string `gorm:"type:text" json:"instructions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AssistantConfig) TableName() string {
	return "dash_assistant_configs"
}

func (a *AssistantConfig) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// DefaultAssistantConfig returns the config inserted at onboarding
func DefaultAssistantConfig(clientID uuid.UUID) *AssistantConfig {
	return &AssistantConfig{
		ClientID:    clientID,
		Provider:    "openai",
		Temperature: 0.7,
		MaxTokens:   1024,
		Tone:        "friendly",
	}
}

// UpdateAssistantConfigRequest edits assistant settings
type UpdateAssistantConfigRequest struct {
	Provider     *string  `json:"provider,omitempty" validate:"omitempty,oneof=openai groq"`
	Model        *string  `json:"model,omitempty"`
	Temperature  *float32 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxTokens    *int     `json:"max_tokens,omitempty" validate:"omitempty,gt=0"`
	Tone         *string  `json:"tone,omitempty"`
	Instructions *string  `json:"instructions,omitempty"`
}
