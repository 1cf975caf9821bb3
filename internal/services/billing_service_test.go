package services

import (
	"context"
	"strings"
	"testing"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/events"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/payment"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/config"
	"github.com/google/uuid"
)

func newBillingService(t *testing.T) (*BillingService, repositories.SubscriptionRepo, uuid.UUID) {
	t.Helper()

	db := newTestDB(t,
		&models.Client{}, &models.Subscription{}, &models.TokenUsage{},
		&models.Notification{}, &audit.AuditLog{},
	)

	client := models.Client{Name: "Acme"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	subRepo := repositories.NewSubscriptionRepo(db)
	svc := NewBillingService(
		payment.NewSandboxGateway("http://localhost:8080"),
		subRepo,
		repositories.NewTokenUsageRepo(db),
		repositories.NewNotificationRepo(db),
		events.NewBus(),
		audit.NewService(db),
		&config.Config{AppBaseURL: "http://localhost:8080"},
	)
	return svc, subRepo, client.ID
}

func TestPlanCheckoutActivatesSubscription(t *testing.T) {
	svc, subRepo, clientID := newBillingService(t)
	ctx := context.Background()

	session, err := svc.CreatePlanCheckout(ctx, clientID, models.PlanPro)
	if err != nil {
		t.Fatalf("CreatePlanCheckout: %v", err)
	}
	if !strings.HasPrefix(session.ID, "sandbox_") {
		t.Fatalf("session ID = %s, want sandbox_ prefix", session.ID)
	}

	if err := svc.CompleteSandboxSession(session.ID); err != nil {
		t.Fatalf("CompleteSandboxSession: %v", err)
	}

	sub, err := subRepo.GetActiveByClient(clientID)
	if err != nil {
		t.Fatalf("GetActiveByClient: %v", err)
	}
	if sub.Plan != models.PlanPro {
		t.Fatalf("plan = %s, want %s", sub.Plan, models.PlanPro)
	}
	if sub.TokensRemaining != models.PlanTokenAllowance(models.PlanPro) {
		t.Fatalf("tokens = %d, want %d", sub.TokensRemaining, models.PlanTokenAllowance(models.PlanPro))
	}
}

func TestPlanSwitchKeepsOneActiveSubscription(t *testing.T) {
	svc, subRepo, clientID := newBillingService(t)
	ctx := context.Background()

	for _, plan := range []string{models.PlanStarter, models.PlanBusiness} {
		session, err := svc.CreatePlanCheckout(ctx, clientID, plan)
		if err != nil {
			t.Fatalf("CreatePlanCheckout(%s): %v", plan, err)
		}
		if err := svc.CompleteSandboxSession(session.ID); err != nil {
			t.Fatalf("CompleteSandboxSession(%s): %v", plan, err)
		}
	}

	sub, err := subRepo.GetActiveByClient(clientID)
	if err != nil {
		t.Fatalf("GetActiveByClient: %v", err)
	}
	if sub.Plan != models.PlanBusiness {
		t.Fatalf("active plan = %s, want %s", sub.Plan, models.PlanBusiness)
	}

	all, err := subRepo.GetByClient(clientID)
	if err != nil {
		t.Fatalf("GetByClient: %v", err)
	}
	active := 0
	for _, s := range all {
		if s.Status == models.SubscriptionActive {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("got %d active subscriptions, want 1", active)
	}
}

func TestTokenPackCreditsActiveSubscription(t *testing.T) {
	svc, subRepo, clientID := newBillingService(t)
	ctx := context.Background()

	planSession, err := svc.CreatePlanCheckout(ctx, clientID, models.PlanStarter)
	if err != nil {
		t.Fatalf("CreatePlanCheckout: %v", err)
	}
	if err := svc.CompleteSandboxSession(planSession.ID); err != nil {
		t.Fatalf("CompleteSandboxSession: %v", err)
	}

	packSession, err := svc.CreateTokenCheckout(ctx, clientID, 5000)
	if err != nil {
		t.Fatalf("CreateTokenCheckout: %v", err)
	}
	if err := svc.CompleteSandboxSession(packSession.ID); err != nil {
		t.Fatalf("CompleteSandboxSession: %v", err)
	}

	sub, err := subRepo.GetActiveByClient(clientID)
	if err != nil {
		t.Fatalf("GetActiveByClient: %v", err)
	}
	if sub.TokensBoughtSeparately != 5000 {
		t.Fatalf("purchased tokens = %d, want 5000", sub.TokensBoughtSeparately)
	}
}

func TestTokenCheckoutRejectsOddAmounts(t *testing.T) {
	svc, _, clientID := newBillingService(t)

	if _, err := svc.CreateTokenCheckout(context.Background(), clientID, 1500); err == nil {
		t.Fatal("expected error for non-multiple of 1000")
	}
	if _, err := svc.CreateTokenCheckout(context.Background(), clientID, 0); err == nil {
		t.Fatal("expected error for zero tokens")
	}
}

func TestTokenSummaryAggregatesUsage(t *testing.T) {
	svc, _, clientID := newBillingService(t)
	ctx := context.Background()

	session, err := svc.CreatePlanCheckout(ctx, clientID, models.PlanStarter)
	if err != nil {
		t.Fatalf("CreatePlanCheckout: %v", err)
	}
	if err := svc.CompleteSandboxSession(session.ID); err != nil {
		t.Fatalf("CompleteSandboxSession: %v", err)
	}

	for _, usage := range []models.TokenUsage{
		{ClientID: clientID, Kind: models.UsageChat, Tokens: 120},
		{ClientID: clientID, Kind: models.UsageChat, Tokens: 80},
		{ClientID: clientID, Kind: models.UsageAnalysis, Tokens: 300},
	} {
		u := usage
		if err := svc.usageRepo.Record(&u); err != nil {
			t.Fatalf("record usage: %v", err)
		}
	}

	summary, err := svc.TokenSummary(clientID)
	if err != nil {
		t.Fatalf("TokenSummary: %v", err)
	}
	if summary.UsedThisPeriod != 500 {
		t.Fatalf("used = %d, want 500", summary.UsedThisPeriod)
	}
	if summary.ByKind[models.UsageChat] != 200 {
		t.Fatalf("chat usage = %d, want 200", summary.ByKind[models.UsageChat])
	}
	if summary.ByKind[models.UsageAnalysis] != 300 {
		t.Fatalf("analysis usage = %d, want 300", summary.ByKind[models.UsageAnalysis])
	}
	if summary.TokensRemaining != models.PlanTokenAllowance(models.PlanStarter) {
		t.Fatalf("remaining = %d, want %d", summary.TokensRemaining, models.PlanTokenAllowance(models.PlanStarter))
	}
}
