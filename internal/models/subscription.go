package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription plans
const (
	PlanStarter  = "starter"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

// Subscription statuses
const (
	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionCancelled = "cancelled"
	SubscriptionPastDue   = "past_due"
)

// Subscription represents a client's plan. At most one active
// subscription per client (enforced by partial unique index and the
// billing service).
type Subscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Plan   string `gorm:"type:text;not null" json:"plan"`
	Status string `gorm:"type:text;not null;default:'inactive'" json:"status"`

	// Token balances. TokensRemaining is the plan allowance for the
	// current period; TokensBoughtSeparately are paid top-ups that
	// survive period rollover.
	TokensRemaining        int `gorm:"type:integer;default:0" json:"tokens_remaining"`
	TokensBoughtSeparately int `gorm:"type:integer;default:0" json:"tokens_bought_separately"`

	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Subscription) TableName() string {
	return "dash_subscriptions"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsActive reports whether the subscription currently grants access
func (s *Subscription) IsActive() bool {
	if s.Status != SubscriptionActive {
		return false
	}
	if s.CurrentPeriodEnd != nil && s.CurrentPeriodEnd.Before(time.Now()) {
		return false
	}
	return true
}

// TotalTokens returns the full spendable balance
func (s *Subscription) TotalTokens() int {
	return s.TokensRemaining + s.TokensBoughtSeparately
}

// PlanTokenAllowance returns the monthly token allowance for a plan
func PlanTokenAllowance(plan string) int {
	switch plan {
	case PlanPro:
		return 50000
	case PlanBusiness:
		return 200000
	default:
		return 10000
	}
}
