package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// HostedGateway talks to the external hosted checkout provider over
// its REST API
type HostedGateway struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewHostedGateway creates a live checkout gateway
func NewHostedGateway(apiKey, baseURL string) *HostedGateway {
	return &HostedGateway{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateSession opens a hosted checkout session
func (g *HostedGateway) CreateSession(ctx context.Context, req *SessionRequest) (*Session, error) {
	payload := map[string]interface{}{
		"client_reference": req.ClientID.String(),
		"kind":             req.Kind,
		"amount":           req.Amount,
		"currency":         req.Currency,
		"success_url":      req.SuccessURL,
		"cancel_url":       req.CancelURL,
		"metadata": map[string]interface{}{
			"plan":        req.Plan,
			"token_count": req.TokenCount,
		},
		"expiry_minutes": 60,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/v1/checkout/sessions", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResp)
		return nil, fmt.Errorf("checkout API error (status %d): %v", resp.StatusCode, errorResp)
	}

	var result struct {
		ID          string `json:"id"`
		CheckoutURL string `json:"checkout_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(60 * time.Minute)
	log.Printf("💳 Checkout session created: %s", result.ID)

	return &Session{
		ID:          result.ID,
		CheckoutURL: result.CheckoutURL,
		ExpiresAt:   &expiresAt,
	}, nil
}

// GetStatus retrieves the session status from the provider
func (g *HostedGateway) GetStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/v1/checkout/sessions/%s", g.baseURL, sessionID), nil)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to query checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &SessionStatus{SessionID: sessionID, Status: StatusPending}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("checkout API returned status %d", resp.StatusCode)
	}

	var result struct {
		Status    string `json:"status"`
		PaidAt    string `json:"paid_at"`
		Reference string `json:"reference"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	status := &SessionStatus{
		SessionID: sessionID,
		Status:    result.Status,
		Reference: result.Reference,
	}
	if result.PaidAt != "" {
		if t, err := time.Parse(time.RFC3339, result.PaidAt); err == nil {
			status.PaidAt = &t
		}
	}

	return status, nil
}

// Cancel cancels a pending session
func (g *HostedGateway) Cancel(ctx context.Context, sessionID string) error {
	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/v1/checkout/sessions/%s/cancel", g.baseURL, sessionID), nil)
	if err != nil {
		return err
	}

	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to cancel checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("checkout cancel failed with status %d", resp.StatusCode)
	}

	log.Printf("💳 Checkout session cancelled: %s", sessionID)
	return nil
}

// VerifyWebhook checks the HMAC signature and parses the event
func (g *HostedGateway) VerifyWebhook(body []byte, signature string) (*WebhookEvent, error) {
	mac := hmac.New(sha256.New, []byte(g.apiKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, fmt.Errorf("invalid webhook signature")
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %w", err)
	}

	return &event, nil
}

// Name returns the gateway name
func (g *HostedGateway) Name() string {
	return "Hosted Checkout Gateway"
}
