package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SandboxGateway simulates the hosted checkout in memory. Sessions
// succeed as soon as the simulated webhook fires, which keeps local
// development and tests independent of the real provider.
type SandboxGateway struct {
	mu       sync.Mutex
	sessions map[string]*sandboxSession
	baseURL  string
}

type sandboxSession struct {
	request *SessionRequest
	status  string
	paidAt  *time.Time
}

func NewSandboxGateway(baseURL string) *SandboxGateway {
	return &SandboxGateway{
		sessions: make(map[string]*sandboxSession),
		baseURL:  baseURL,
	}
}

func (g *SandboxGateway) CreateSession(ctx context.Context, req *SessionRequest) (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := "sandbox_" + uuid.New().String()
	g.sessions[id] = &sandboxSession{
		request: req,
		status:  StatusPending,
	}

	expiresAt := time.Now().Add(60 * time.Minute)
	log.Printf("💳 Sandbox checkout session created: %s", id)

	return &Session{
		ID:          id,
		CheckoutURL: fmt.Sprintf("%s/sandbox/checkout/%s", g.baseURL, id),
		ExpiresAt:   &expiresAt,
	}, nil
}

func (g *SandboxGateway) GetStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sess, ok := g.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("sandbox session not found: %s", sessionID)
	}

	return &SessionStatus{
		SessionID: sessionID,
		Status:    sess.status,
		PaidAt:    sess.paidAt,
	}, nil
}

func (g *SandboxGateway) Cancel(ctx context.Context, sessionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	sess, ok := g.sessions[sessionID]
	if !ok {
		return fmt.Errorf("sandbox session not found: %s", sessionID)
	}
	if sess.status != StatusPending {
		return fmt.Errorf("sandbox session %s is %s, cannot cancel", sessionID, sess.status)
	}

	sess.status = StatusCancelled
	return nil
}

// VerifyWebhook parses without signature checking, sandbox webhooks
// are generated locally
func (g *SandboxGateway) VerifyWebhook(body []byte, signature string) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}
	return &event, nil
}

// CompleteSession marks a sandbox session paid and returns the webhook
// event the real provider would have sent
func (g *SandboxGateway) CompleteSession(sessionID string) (*WebhookEvent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sess, ok := g.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("sandbox session not found: %s", sessionID)
	}
	if sess.status != StatusPending {
		return nil, fmt.Errorf("sandbox session %s is %s, cannot complete", sessionID, sess.status)
	}

	now := time.Now()
	sess.status = StatusPaid
	sess.paidAt = &now

	return &WebhookEvent{
		SessionID:  sessionID,
		Status:     StatusPaid,
		ClientID:   sess.request.ClientID,
		Kind:       sess.request.Kind,
		Plan:       sess.request.Plan,
		TokenCount: sess.request.TokenCount,
	}, nil
}

func (g *SandboxGateway) Name() string {
	return "Sandbox Checkout Gateway"
}
