package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses, in board column order
const (
	AppointmentPending   = "pending"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// AppointmentStatuses is the column order for the appointments board
var AppointmentStatuses = []string{
	AppointmentPending, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow,
}

// Appointment is a customer booking shown on the appointments board
type Appointment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Name  string `gorm:"type:text;not null" json:"name"`
	Email string `gorm:"type:text" json:"email,omitempty"`

	Date time.Time `gorm:"type:date;not null" json:"date"`
	Time string    `gorm:"type:text;not null" json:"time"` // "15:30"
	Type string    `gorm:"type:text" json:"type,omitempty"`

	Status string `gorm:"type:text;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Appointment) TableName() string {
	return "dash_appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// GetID implements board.Card
func (a Appointment) GetID() uuid.UUID { return a.ID }

// GetStatus implements board.Card
func (a Appointment) GetStatus() string { return a.Status }

// CreateAppointmentRequest books an appointment
type CreateAppointmentRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Date  string `json:"date" validate:"required"` // "2026-08-29"
	Time  string `json:"time" validate:"required"`
	Type  string `json:"type,omitempty"`
}

// UpdateAppointmentRequest edits an appointment
type UpdateAppointmentRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Date   *string `json:"date,omitempty"`
	Time   *string `json:"time,omitempty"`
	Type   *string `json:"type,omitempty"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled no_show"`
}
