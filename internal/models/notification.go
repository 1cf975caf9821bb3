package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a client-scoped feed item, pushed live over SSE
type Notification struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Title string `gorm:"type:text;not null" json:"title"`
	Body  string `gorm:"type:text" json:"body,omitempty"`
	Read  bool   `gorm:"type:boolean;default:false" json:"read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Notification) TableName() string {
	return "dash_notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
