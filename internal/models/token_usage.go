package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token usage kinds
const (
	UsageChat     = "chat"
	UsageAnalysis = "analysis"
)

// TokenUsage is one metering entry in the usage ledger
type TokenUsage struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Kind   string `gorm:"type:text;not null" json:"kind"`
	Tokens int    `gorm:"type:integer;not null" json:"tokens"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TokenUsage) TableName() string {
	return "dash_token_usage"
}

func (u *TokenUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TokenSummary is the aggregate backing the tokens screen
type TokenSummary struct {
	TokensRemaining        int            `json:"tokens_remaining"`
	TokensBoughtSeparately int            `json:"tokens_bought_separately"`
	UsedThisPeriod         int            `json:"used_this_period"`
	ByKind                 map[string]int `json:"by_kind"`
	Daily                  []DailyUsage   `json:"daily"`
}

// DailyUsage is one day's token total
type DailyUsage struct {
	Date   string `json:"date"` // "2026-08-29"
	Tokens int    `json:"tokens"`
}
