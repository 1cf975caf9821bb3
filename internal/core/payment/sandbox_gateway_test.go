package payment

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestSandboxSessionLifecycle(t *testing.T) {
	g := NewSandboxGateway("http://localhost:8080")
	clientID := uuid.New()

	sess, err := g.CreateSession(context.Background(), &SessionRequest{
		ClientID: clientID,
		Kind:     KindPlan,
		Plan:     "pro",
		Amount:   49,
		Currency: "USD",
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.CheckoutURL == "" {
		t.Fatal("CheckoutURL is empty")
	}

	status, err := g.GetStatus(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Status != StatusPending {
		t.Fatalf("status = %s, want %s", status.Status, StatusPending)
	}

	event, err := g.CompleteSession(sess.ID)
	if err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	if event.Status != StatusPaid || event.Plan != "pro" || event.ClientID != clientID {
		t.Fatalf("webhook event = %+v, want paid pro for %s", event, clientID)
	}

	status, _ = g.GetStatus(context.Background(), sess.ID)
	if status.Status != StatusPaid || status.PaidAt == nil {
		t.Fatalf("status after completion = %+v, want paid with timestamp", status)
	}
}

func TestSandboxCancelOnlyPending(t *testing.T) {
	g := NewSandboxGateway("http://localhost:8080")

	sess, _ := g.CreateSession(context.Background(), &SessionRequest{
		ClientID: uuid.New(),
		Kind:     KindTokenPack,
		TokenCount: 5000,
	})

	if _, err := g.CompleteSession(sess.ID); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	if err := g.Cancel(context.Background(), sess.ID); err == nil {
		t.Fatal("Cancel on paid session should fail")
	}
}

func TestHostedWebhookSignature(t *testing.T) {
	g := NewHostedGateway("secret-key", "https://pay.example.com")

	body := []byte(`{"session_id":"cs_1","status":"paid","kind":"plan","plan":"starter"}`)

	if _, err := g.VerifyWebhook(body, "bad-signature"); err == nil {
		t.Fatal("VerifyWebhook accepted a bad signature")
	}
}
