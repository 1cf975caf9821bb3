package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DashboardUser is the identity that signs in to the dashboard.
// One user maps to at most one client (tenant).
type DashboardUser struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"client_id"`

	Email        string `gorm:"type:text;unique;not null" json:"email"`
	Name         string `gorm:"type:text" json:"name"`
	PasswordHash string `gorm:"type:text;not null" json:"-"`

	IsActive bool `gorm:"type:boolean;default:true" json:"is_active"`

	RefreshToken          string     `gorm:"type:text" json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DashboardUser) TableName() string {
	return "dash_users"
}

func (u *DashboardUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RegisterRequest creates a user plus their tenant
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Name         string `json:"name" validate:"required"`
	BusinessName string `json:"business_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse carries the token pair and signed-in identity
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"` // seconds
	User         *UserInfo `json:"user"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	ClientID string `json:"client_id"`
}

// TokenClaims are the JWT access-token claims
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	ClientID string `json:"client_id"`
}
