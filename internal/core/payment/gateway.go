package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Gateway abstracts the hosted checkout provider so sandbox and live
// checkout can be swapped by configuration
type Gateway interface {
	// CreateSession opens a hosted checkout session and returns the
	// URL the client is redirected to
	CreateSession(ctx context.Context, req *SessionRequest) (*Session, error)

	// GetStatus retrieves the current session status
	GetStatus(ctx context.Context, sessionID string) (*SessionStatus, error)

	// Cancel cancels a pending session
	Cancel(ctx context.Context, sessionID string) error

	// VerifyWebhook validates and parses a webhook payload
	VerifyWebhook(body []byte, signature string) (*WebhookEvent, error)

	// Name returns the gateway provider name
	Name() string
}

// Checkout kinds
const (
	KindPlan      = "plan"       // subscription plan purchase
	KindTokenPack = "token_pack" // one-off token top-up
)

// SessionRequest describes what is being bought
type SessionRequest struct {
	ClientID   uuid.UUID `json:"client_id"`
	Kind       string    `json:"kind"`
	Plan       string    `json:"plan,omitempty"`        // for KindPlan
	TokenCount int       `json:"token_count,omitempty"` // for KindTokenPack
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	SuccessURL string    `json:"success_url"`
	CancelURL  string    `json:"cancel_url"`
}

// Session is an open checkout session
type Session struct {
	ID          string     `json:"id"`
	CheckoutURL string     `json:"checkout_url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// SessionStatus is the current state of a session
type SessionStatus struct {
	SessionID string     `json:"session_id"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	Reference string     `json:"reference,omitempty"`
}

// WebhookEvent is a parsed checkout webhook
type WebhookEvent struct {
	SessionID  string    `json:"session_id"`
	Status     string    `json:"status"`
	ClientID   uuid.UUID `json:"client_id"`
	Kind       string    `json:"kind"`
	Plan       string    `json:"plan,omitempty"`
	TokenCount int       `json:"token_count,omitempty"`
}

// Session status constants
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)
