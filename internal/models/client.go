package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Theme constants for dashboard preferences
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Sidebar display modes (3-state cycle)
const (
	SidebarNormal   = "normal"
	SidebarExpanded = "expanded"
	SidebarHidden   = "hidden"
)

// Client represents a business tenant using the product.
// All business-scoped data hangs off this record via client_id.
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// Profile
	Name            string `gorm:"type:text;not null" json:"name"`
	BusinessName    string `gorm:"type:text" json:"business_name"`
	ProfileImageURL string `gorm:"type:text" json:"profile_image_url,omitempty"`

	// Onboarding progress. OnboardingStep tracks the last committed
	// finalize step so a failed finalize can resume.
	OnboardingCompleted bool `gorm:"type:boolean;default:false" json:"onboarding_completed"`
	OnboardingStep      int  `gorm:"type:integer;default:0" json:"onboarding_step"`

	// Dashboard preferences
	Theme       string `gorm:"type:text;default:'light'" json:"theme"`
	SidebarMode string `gorm:"type:text;default:'normal'" json:"sidebar_mode"`

	// Timestamps
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string {
	return "dash_clients"
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// UpdateClientRequest represents a client profile update
type UpdateClientRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	BusinessName    *string `json:"business_name,omitempty" validate:"omitempty,max=200"`
	ProfileImageURL *string `json:"profile_image_url,omitempty" validate:"omitempty,url"`
}

// UpdatePreferencesRequest updates dashboard UI preferences
type UpdatePreferencesRequest struct {
	Theme       *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	SidebarMode *string `json:"sidebar_mode,omitempty" validate:"omitempty,oneof=normal expanded hidden"`
}
