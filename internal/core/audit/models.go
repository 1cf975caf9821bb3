package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records one mutation performed through the dashboard
type AuditLog struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`

	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	ClientID uuid.UUID `json:"client_id" gorm:"type:uuid;index"`

	Action   string `json:"action" gorm:"type:text;not null;index"` // create, update, delete, move
	Entity   string `json:"entity" gorm:"type:text;not null;index"` // task, appointment, reservation, document, ...
	EntityID string `json:"entity_id" gorm:"type:text;index"`

	OldValue datatypes.JSON `json:"old_value,omitempty" gorm:"type:jsonb"`
	NewValue datatypes.JSON `json:"new_value,omitempty" gorm:"type:jsonb"`

	Description string `json:"description,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (AuditLog) TableName() string {
	return "dash_audit_logs"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Filter narrows an audit log listing
type Filter struct {
	ClientID *uuid.UUID
	Action   string
	Entity   string
	EntityID string
	Page     int
	PageSize int
}

// ListResponse is a paginated audit log page
type ListResponse struct {
	Logs       []AuditLog `json:"logs"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
