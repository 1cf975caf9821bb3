package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BusinessInfo holds the free-form descriptive profile a client fills
// in during onboarding and edits through the settings tabs. One record
// per client. The assistant's knowledge retriever reads from here.
type BusinessInfo struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"client_id"`

	Description  string `gorm:"type:text" json:"description,omitempty"`
	Address      string `gorm:"type:text" json:"address,omitempty"`
	Phone        string `gorm:"type:text" json:"phone,omitempty"`
	Website      string `gorm:"type:text" json:"website,omitempty"`
	OpeningHours string `gorm:"type:text" json:"opening_hours,omitempty"`
	Services     string `gorm:"type:text" json:"services,omitempty"`

	// FAQ entries as [{question, answer}, ...]
	FAQ datatypes.JSON `gorm:"type:jsonb" json:"faq,omitempty"`

	// Appointment availability as map weekday -> {start, end, enabled}
	AppointmentAvailability datatypes.JSON `gorm:"type:jsonb" json:"appointment_availability,omitempty"`
	AppointmentSlotMinutes  int            `gorm:"type:integer;default:30" json:"appointment_slot_minutes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BusinessInfo) TableName() string {
	return "dash_business_info"
}

func (b *BusinessInfo) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// FAQEntry is one question/answer pair in the FAQ blob
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// UpdateBusinessInfoRequest updates the tabbed business profile form
type UpdateBusinessInfoRequest struct {
	Description  *string    `json:"description,omitempty"`
	Address      *string    `json:"address,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	Website      *string    `json:"website,omitempty"`
	OpeningHours *string    `json:"opening_hours,omitempty"`
	Services     *string    `json:"services,omitempty"`
	FAQ          []FAQEntry `json:"faq,omitempty"`

	AppointmentAvailability map[string]ScheduleEntry `json:"appointment_availability,omitempty"`
	AppointmentSlotMinutes  *int                     `json:"appointment_slot_minutes,omitempty" validate:"omitempty,gt=0"`
}
