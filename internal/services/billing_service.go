package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/events"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/payment"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/config"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanPrice is a plan's monthly price in cents
var PlanPrices = map[string]int64{
	models.PlanStarter:  900,
	models.PlanPro:      2900,
	models.PlanBusiness: 9900,
}

// tokenPackPricePer1000 is the token top-up price in cents per 1000
// tokens
const tokenPackPricePer1000 int64 = 100

// subscriptionPeriod is one billing period
const subscriptionPeriod = 30 * 24 * time.Hour

type BillingService struct {
	gateway   payment.Gateway
	subRepo   repositories.SubscriptionRepo
	usageRepo repositories.TokenUsageRepo
	notifRepo repositories.NotificationRepo
	bus       *events.Bus
	audit     *audit.Service
	cfg       *config.Config
}

func NewBillingService(
	gateway payment.Gateway,
	subRepo repositories.SubscriptionRepo,
	usageRepo repositories.TokenUsageRepo,
	notifRepo repositories.NotificationRepo,
	bus *events.Bus,
	auditSvc *audit.Service,
	cfg *config.Config,
) *BillingService {
	return &BillingService{
		gateway:   gateway,
		subRepo:   subRepo,
		usageRepo: usageRepo,
		notifRepo: notifRepo,
		bus:       bus,
		audit:     auditSvc,
		cfg:       cfg,
	}
}

// CreatePlanCheckout opens a hosted checkout session for a plan
func (s *BillingService) CreatePlanCheckout(ctx context.Context, clientID uuid.UUID, plan string) (*payment.Session, error) {
	price, ok := PlanPrices[plan]
	if !ok {
		return nil, fmt.Errorf("unknown plan %q", plan)
	}

	return s.gateway.CreateSession(ctx, &payment.SessionRequest{
		ClientID:   clientID,
		Kind:       payment.KindPlan,
		Plan:       plan,
		Amount:     float64(price),
		Currency:   "usd",
		SuccessURL: s.cfg.CheckoutSuccessURL,
		CancelURL:  s.cfg.CheckoutCancelURL,
	})
}

// CreateTokenCheckout opens a hosted checkout session for a token
// top-up
func (s *BillingService) CreateTokenCheckout(ctx context.Context, clientID uuid.UUID, tokenCount int) (*payment.Session, error) {
	if tokenCount < 1000 || tokenCount%1000 != 0 {
		return nil, errors.New("token packs are sold in multiples of 1000")
	}

	amount := int64(tokenCount/1000) * tokenPackPricePer1000
	return s.gateway.CreateSession(ctx, &payment.SessionRequest{
		ClientID:   clientID,
		Kind:       payment.KindTokenPack,
		TokenCount: tokenCount,
		Amount:     float64(amount),
		Currency:   "usd",
		SuccessURL: s.cfg.CheckoutSuccessURL,
		CancelURL:  s.cfg.CheckoutCancelURL,
	})
}

// HandleWebhook verifies and applies a checkout provider callback
func (s *BillingService) HandleWebhook(body []byte, signature string) error {
	event, err := s.gateway.VerifyWebhook(body, signature)
	if err != nil {
		return err
	}
	return s.Apply(event)
}

// CompleteSandboxSession settles a sandbox checkout as if the provider
// had sent its webhook. Only available in sandbox mode.
func (s *BillingService) CompleteSandboxSession(sessionID string) error {
	sandbox, ok := s.gateway.(*payment.SandboxGateway)
	if !ok {
		return errors.New("sandbox completion is only available in sandbox mode")
	}

	event, err := sandbox.CompleteSession(sessionID)
	if err != nil {
		return err
	}
	return s.Apply(event)
}

// Apply activates a plan or credits a token pack for a settled
// checkout. Non-paid events are ignored.
func (s *BillingService) Apply(event *payment.WebhookEvent) error {
	if event.Status != payment.StatusPaid {
		log.Printf("💳 Ignoring checkout %s with status %s", event.SessionID, event.Status)
		return nil
	}

	switch event.Kind {
	case payment.KindPlan:
		periodEnd := time.Now().Add(subscriptionPeriod)
		sub, err := s.subRepo.ActivatePlan(event.ClientID, event.Plan, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to activate plan: %w", err)
		}
		log.Printf("💳 Plan %s activated for client %s", event.Plan, event.ClientID)

		s.notify(event.ClientID, "Plan activated",
			fmt.Sprintf("Your %s plan is active with %d tokens.", sub.Plan, sub.TokensRemaining))
		s.audit.Record(uuid.Nil, event.ClientID, "activate", "subscription", sub.ID.String(), nil, sub)

	case payment.KindTokenPack:
		if err := s.subRepo.AddPurchasedTokens(event.ClientID, event.TokenCount); err != nil {
			return fmt.Errorf("failed to credit tokens: %w", err)
		}
		log.Printf("💳 %d tokens credited to client %s", event.TokenCount, event.ClientID)

		s.notify(event.ClientID, "Tokens added",
			fmt.Sprintf("%d tokens were added to your balance.", event.TokenCount))
		s.audit.Record(uuid.Nil, event.ClientID, "purchase", "token_pack", event.SessionID, nil, event)

	default:
		return fmt.Errorf("unknown checkout kind %q", event.Kind)
	}

	return nil
}

// Subscription returns the client's active subscription, if any
func (s *BillingService) Subscription(clientID uuid.UUID) (*models.Subscription, error) {
	sub, err := s.subRepo.GetActiveByClient(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSubscription
		}
		return nil, err
	}
	return sub, nil
}

// TokenSummary aggregates balances and usage for the tokens screen
func (s *BillingService) TokenSummary(clientID uuid.UUID) (*models.TokenSummary, error) {
	summary := &models.TokenSummary{ByKind: map[string]int{}}

	periodStart := time.Now().Add(-subscriptionPeriod)
	sub, err := s.subRepo.GetActiveByClient(clientID)
	if err == nil {
		summary.TokensRemaining = sub.TokensRemaining
		summary.TokensBoughtSeparately = sub.TokensBoughtSeparately
		if sub.CurrentPeriodEnd != nil {
			periodStart = sub.CurrentPeriodEnd.Add(-subscriptionPeriod)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	total, byKind, daily, err := s.usageRepo.Summarize(clientID, periodStart)
	if err != nil {
		return nil, err
	}

	summary.UsedThisPeriod = total
	if byKind != nil {
		summary.ByKind = byKind
	}
	summary.Daily = daily
	return summary, nil
}

func (s *BillingService) notify(clientID uuid.UUID, title, body string) {
	notification := &models.Notification{
		ClientID: clientID,
		Title:    title,
		Body:     body,
	}
	if err := s.notifRepo.Create(notification); err != nil {
		log.Printf("⚠️ failed to create billing notification: %v", err)
		return
	}

	s.bus.Publish(events.Event{
		Type:     events.TypeNotification,
		ClientID: clientID,
		Payload:  notification,
	})
}
