package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WidgetConfig holds the embeddable chat widget configuration.
// Single record per client, upserted.
type WidgetConfig struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"client_id"`

	Position       string `gorm:"type:text;default:'bottom-right'" json:"position"`
	PrimaryColor   string `gorm:"type:text;default:'#4F46E5'" json:"primary_color"`
	SecondaryColor string `gorm:"type:text;default:'#FFFFFF'" json:"secondary_color"`
	WelcomeMessage string `gorm:"type:text" json:"welcome_message"`
	LogoURL        string `gorm:"type:text" json:"logo_url,omitempty"`
	Enabled        bool   `gorm:"type:boolean;default:true" json:"enabled"`

	// Schedule maps weekday name -> {start, end, enabled}
	Schedule datatypes.JSON `gorm:"type:jsonb" json:"schedule,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (WidgetConfig) TableName() string {
	return "dash_widget_configs"
}

func (w *WidgetConfig) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// ScheduleEntry is one weekday's availability window
type ScheduleEntry struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Enabled bool   `json:"enabled"`
}

// UpsertWidgetConfigRequest creates or replaces the widget config
type UpsertWidgetConfigRequest struct {
	Position       *string                  `json:"position,omitempty" validate:"omitempty,oneof=bottom-right bottom-left top-right top-left"`
	PrimaryColor   *string                  `json:"primary_color,omitempty"`
	SecondaryColor *string                  `json:"secondary_color,omitempty"`
	WelcomeMessage *string                  `json:"welcome_message,omitempty" validate:"omitempty,max=500"`
	LogoURL        *string                  `json:"logo_url,omitempty" validate:"omitempty,url"`
	Enabled        *bool                    `json:"enabled,omitempty"`
	Schedule       map[string]ScheduleEntry `json:"schedule,omitempty"`
}
