package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation statuses, in board column order
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// ReservationStatuses is the column order for the reservations board
var ReservationStatuses = []string{
	ReservationPending, ReservationConfirmed, ReservationCancelled,
}

// Reservation is a table/party booking shown on the reservations board
type Reservation struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Name  string `gorm:"type:text;not null" json:"name"`
	Email string `gorm:"type:text" json:"email,omitempty"`

	Date            time.Time `gorm:"type:date;not null" json:"date"`
	Time            string    `gorm:"type:text;not null" json:"time"`
	ReservationType string    `gorm:"type:text" json:"reservation_type,omitempty"`
	PeopleCount     int       `gorm:"type:integer;default:1" json:"people_count"`
	SpecialRequests string    `gorm:"type:text" json:"special_requests,omitempty"`

	Status string `gorm:"type:text;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Reservation) TableName() string {
	return "dash_reservations"
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// GetID implements board.Card
func (r Reservation) GetID() uuid.UUID { return r.ID }

// GetStatus implements board.Card
func (r Reservation) GetStatus() string { return r.Status }

// ReservationType is a client-scoped reservation category (e.g. table,
// private room) with independent CRUD
type ReservationType struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Name     string `gorm:"type:text;not null" json:"name"`
	Capacity int    `gorm:"type:integer;default:0" json:"capacity"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ReservationType) TableName() string {
	return "dash_reservation_types"
}

func (rt *ReservationType) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}

// ReservationAvailability is a weekday window during which
// reservations are accepted
type ReservationAvailability struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Weekday      string `gorm:"type:text;not null" json:"weekday"` // "monday".."sunday"
	StartTime    string `gorm:"type:text;not null" json:"start_time"`
	EndTime      string `gorm:"type:text;not null" json:"end_time"`
	Enabled      bool   `gorm:"type:boolean;default:true" json:"enabled"`
	MaxPartySize int    `gorm:"type:integer;default:0" json:"max_party_size"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ReservationAvailability) TableName() string {
	return "dash_reservation_availability"
}

func (ra *ReservationAvailability) BeforeCreate(tx *gorm.DB) error {
	if ra.ID == uuid.Nil {
		ra.ID = uuid.New()
	}
	return nil
}

// CreateReservationRequest books a reservation
type CreateReservationRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	ReservationType string `json:"reservation_type,omitempty"`
	PeopleCount     int    `json:"people_count" validate:"gte=1"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// UpdateReservationRequest edits a reservation
type UpdateReservationRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	ReservationType *string `json:"reservation_type,omitempty"`
	PeopleCount     *int    `json:"people_count,omitempty" validate:"omitempty,gte=1"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled"`
}

// CreateReservationTypeRequest adds a reservation category
type CreateReservationTypeRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

// UpsertAvailabilityRequest sets one weekday's reservation window
type UpsertAvailabilityRequest struct {
	Weekday      string `json:"weekday" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	Enabled      *bool  `json:"enabled,omitempty"`
	MaxPartySize *int   `json:"max_party_size,omitempty" validate:"omitempty,gte=0"`
}
