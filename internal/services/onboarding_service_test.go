package services

import (
	"context"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newOnboardingService(t *testing.T) (*OnboardingService, *gorm.DB, uuid.UUID) {
	t.Helper()

	db := newTestDB(t,
		&models.Client{}, &models.BusinessInfo{}, &models.AssistantConfig{},
		&models.Subscription{}, &models.WidgetConfig{},
		&models.Reservation{}, &models.ReservationType{}, &models.ReservationAvailability{},
		&audit.AuditLog{},
	)

	client := models.Client{Name: "New user"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	svc := NewOnboardingService(
		repositories.NewClientRepo(db),
		repositories.NewBusinessInfoRepo(db),
		repositories.NewAssistantConfigRepo(db),
		repositories.NewSubscriptionRepo(db),
		repositories.NewWidgetConfigRepo(db),
		repositories.NewReservationRepo(db),
		audit.NewService(db),
	)
	return svc, db, client.ID
}

func TestFinalizeProvisionsEverything(t *testing.T) {
	svc, db, clientID := newOnboardingService(t)
	userID := uuid.New()

	maxParty := 8
	result, err := svc.Finalize(context.Background(), userID, clientID, &FinalizeRequest{
		Name:         "Ana",
		BusinessName: "Ana's Bistro",
		Description:  "Small bistro",
		Tone:         "formal",
		ReservationTypes: []models.CreateReservationTypeRequest{
			{Name: "table", Capacity: 4},
		},
		ReservationAvailability: []models.UpsertAvailabilityRequest{
			{Weekday: "friday", StartTime: "17:00", EndTime: "23:00", MaxPartySize: &maxParty},
		},
	})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !result.Done || result.Completed != result.Total {
		t.Fatalf("result = %+v, want done with all steps", result)
	}

	var client models.Client
	if err := db.First(&client, "id = ?", clientID).Error; err != nil {
		t.Fatalf("reload client: %v", err)
	}
	if !client.OnboardingCompleted {
		t.Fatal("onboarding_completed = false, want true")
	}
	if client.BusinessName != "Ana's Bistro" {
		t.Fatalf("business name = %q", client.BusinessName)
	}

	var sub models.Subscription
	if err := db.First(&sub, "client_id = ?", clientID).Error; err != nil {
		t.Fatalf("subscription not created: %v", err)
	}
	if sub.Plan != models.PlanStarter || sub.Status != models.SubscriptionActive {
		t.Fatalf("subscription = %s/%s, want starter/active", sub.Plan, sub.Status)
	}

	var cfg models.AssistantConfig
	if err := db.First(&cfg, "client_id = ?", clientID).Error; err != nil {
		t.Fatalf("assistant config not created: %v", err)
	}
	if cfg.Tone != "formal" {
		t.Fatalf("tone = %s, want formal", cfg.Tone)
	}

	var availability models.ReservationAvailability
	if err := db.First(&availability, "client_id = ? AND weekday = ?", clientID, "friday").Error; err != nil {
		t.Fatalf("reservation availability not created: %v", err)
	}
	if availability.MaxPartySize != 8 {
		t.Fatalf("max party size = %d, want 8", availability.MaxPartySize)
	}
}

func TestFinalizeKeepsExistingActiveSubscription(t *testing.T) {
	svc, db, clientID := newOnboardingService(t)

	periodEnd := time.Now().Add(20 * 24 * time.Hour)
	existing := models.Subscription{
		ClientID:         clientID,
		Plan:             models.PlanPro,
		Status:           models.SubscriptionActive,
		TokensRemaining:  50000,
		CurrentPeriodEnd: &periodEnd,
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	if _, err := svc.Finalize(context.Background(), uuid.New(), clientID, &FinalizeRequest{
		Name:         "Ana",
		BusinessName: "Ana's Bistro",
	}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	var count int64
	db.Model(&models.Subscription{}).Where("client_id = ?", clientID).Count(&count)
	if count != 1 {
		t.Fatalf("subscriptions = %d, want 1 (plan checkout must not be stacked)", count)
	}

	var sub models.Subscription
	db.First(&sub, "client_id = ?", clientID)
	if sub.Plan != models.PlanPro {
		t.Fatalf("plan = %s, want pro kept", sub.Plan)
	}
}

func TestFinalizeAlreadyCompletedShortCircuits(t *testing.T) {
	svc, db, clientID := newOnboardingService(t)

	if err := db.Model(&models.Client{}).Where("id = ?", clientID).
		Update("onboarding_completed", true).Error; err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	result, err := svc.Finalize(context.Background(), uuid.New(), clientID, &FinalizeRequest{
		Name:         "Ana",
		BusinessName: "Ana's Bistro",
	})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !result.Done {
		t.Fatal("result.Done = false, want true")
	}

	var count int64
	db.Model(&models.Subscription{}).Where("client_id = ?", clientID).Count(&count)
	if count != 0 {
		t.Fatalf("subscriptions = %d, want 0 after short-circuit", count)
	}
}

func TestFinalizeRequiresNames(t *testing.T) {
	svc, _, clientID := newOnboardingService(t)

	if _, err := svc.Finalize(context.Background(), uuid.New(), clientID, &FinalizeRequest{
		Name: "Ana",
	}); err == nil {
		t.Fatal("Finalize without business name should fail")
	}
}
