package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/onboarding"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinalizeRequest carries the full wizard draft submitted at the
// review step
type FinalizeRequest struct {
	// Profile
	Name            string `json:"name" validate:"required,min=1,max=200"`
	BusinessName    string `json:"business_name" validate:"required,max=200"`
	ProfileImageURL string `json:"profile_image_url,omitempty" validate:"omitempty,url"`

	// Business profile
	Description  string            `json:"description,omitempty"`
	Address      string            `json:"address,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Website      string            `json:"website,omitempty"`
	OpeningHours string            `json:"opening_hours,omitempty"`
	Services     string            `json:"services,omitempty"`
	FAQ          []models.FAQEntry `json:"faq,omitempty"`

	// Assistant
	Tone         string `json:"tone,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	// Widget
	WelcomeMessage string `json:"welcome_message,omitempty" validate:"omitempty,max=500"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	Position       string `json:"position,omitempty" validate:"omitempty,oneof=bottom-right bottom-left top-right top-left"`

	// Availability, all optional
	AppointmentAvailability map[string]models.ScheduleEntry       `json:"appointment_availability,omitempty"`
	AppointmentSlotMinutes  int                                   `json:"appointment_slot_minutes,omitempty" validate:"omitempty,gt=0"`
	ReservationAvailability []models.UpsertAvailabilityRequest    `json:"reservation_availability,omitempty"`
	ReservationTypes        []models.CreateReservationTypeRequest `json:"reservation_types,omitempty"`
}

// FinalizeResult reports how far the finalize sequence got
type FinalizeResult struct {
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Done       bool   `json:"done"`
	FailedStep string `json:"failed_step,omitempty"`
}

type OnboardingService struct {
	clientRepo    repositories.ClientRepo
	infoRepo      repositories.BusinessInfoRepo
	assistantRepo repositories.AssistantConfigRepo
	subRepo       repositories.SubscriptionRepo
	widgetRepo    repositories.WidgetConfigRepo
	resRepo       repositories.ReservationRepo
	audit         *audit.Service
}

func NewOnboardingService(
	clientRepo repositories.ClientRepo,
	infoRepo repositories.BusinessInfoRepo,
	assistantRepo repositories.AssistantConfigRepo,
	subRepo repositories.SubscriptionRepo,
	widgetRepo repositories.WidgetConfigRepo,
	resRepo repositories.ReservationRepo,
	auditSvc *audit.Service,
) *OnboardingService {
	return &OnboardingService{
		clientRepo:    clientRepo,
		infoRepo:      infoRepo,
		assistantRepo: assistantRepo,
		subRepo:       subRepo,
		widgetRepo:    widgetRepo,
		resRepo:       resRepo,
		audit:         auditSvc,
	}
}

// Steps returns the wizard's step sequence for the frontend
func (s *OnboardingService) Steps() []onboarding.Step {
	return onboarding.DefaultSteps
}

// Finalize fans the wizard draft out into the client's initial
// resources. The sequence is resumable: a failed run persists its
// progress and a re-run skips the steps that already committed.
func (s *OnboardingService) Finalize(ctx context.Context, userID, clientID uuid.UUID, req *FinalizeRequest) (*FinalizeResult, error) {
	if req.Name == "" || req.BusinessName == "" {
		return nil, errors.New("name and business name are required")
	}

	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client.OnboardingCompleted {
		return &FinalizeResult{Completed: 7, Total: 7, Done: true}, nil
	}

	saga := onboarding.NewSaga([]onboarding.SagaStep{
		{Name: "update_client", Run: func(ctx context.Context) error {
			return s.clientRepo.UpdateFields(clientID, map[string]interface{}{
				"name":              req.Name,
				"business_name":     req.BusinessName,
				"profile_image_url": req.ProfileImageURL,
			})
		}},
		{Name: "insert_business_info", Run: func(ctx context.Context) error {
			info := &models.BusinessInfo{
				ClientID:     clientID,
				Description:  req.Description,
				Address:      req.Address,
				Phone:        req.Phone,
				Website:      req.Website,
				OpeningHours: req.OpeningHours,
				Services:     req.Services,
			}
			if len(req.FAQ) > 0 {
				raw, err := json.Marshal(req.FAQ)
				if err != nil {
					return err
				}
				info.FAQ = raw
			}
			return s.infoRepo.Upsert(info)
		}},
		{Name: "insert_assistant_config", Run: func(ctx context.Context) error {
			cfg := models.DefaultAssistantConfig(clientID)
			if req.Tone != "" {
				cfg.Tone = req.Tone
			}
			cfg.Instructions = req.Instructions
			return s.assistantRepo.Upsert(cfg)
		}},
		{Name: "insert_subscription", Run: func(ctx context.Context) error {
			// Plan checkout may already have activated one; never
			// stack a second active subscription
			_, err := s.subRepo.GetActiveByClient(clientID)
			if err == nil {
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			periodEnd := time.Now().AddDate(0, 1, 0)
			return s.subRepo.Create(&models.Subscription{
				ClientID:         clientID,
				Plan:             models.PlanStarter,
				Status:           models.SubscriptionActive,
				TokensRemaining:  models.PlanTokenAllowance(models.PlanStarter),
				CurrentPeriodEnd: &periodEnd,
			})
		}},
		{Name: "upsert_widget_config", Run: func(ctx context.Context) error {
			cfg := &models.WidgetConfig{
				ClientID:       clientID,
				WelcomeMessage: req.WelcomeMessage,
				Enabled:        true,
			}
			if req.Position != "" {
				cfg.Position = req.Position
			}
			if req.PrimaryColor != "" {
				cfg.PrimaryColor = req.PrimaryColor
			}
			return s.widgetRepo.Upsert(cfg)
		}},
		{Name: "set_appointment_availability", Run: func(ctx context.Context) error {
			if len(req.AppointmentAvailability) == 0 && req.AppointmentSlotMinutes == 0 {
				return nil
			}
			info, err := s.infoRepo.GetByClient(clientID)
			if err != nil {
				return err
			}
			if len(req.AppointmentAvailability) > 0 {
				raw, err := json.Marshal(req.AppointmentAvailability)
				if err != nil {
					return err
				}
				info.AppointmentAvailability = raw
			}
			if req.AppointmentSlotMinutes > 0 {
				info.AppointmentSlotMinutes = req.AppointmentSlotMinutes
			}
			return s.infoRepo.Upsert(info)
		}},
		{Name: "set_reservation_setup", Run: func(ctx context.Context) error {
			for _, rt := range req.ReservationTypes {
				if err := s.resRepo.CreateType(&models.ReservationType{
					ClientID: clientID,
					Name:     rt.Name,
					Capacity: rt.Capacity,
				}); err != nil {
					return err
				}
			}
			for _, w := range req.ReservationAvailability {
				ra := &models.ReservationAvailability{
					ClientID:  clientID,
					Weekday:   w.Weekday,
					StartTime: w.StartTime,
					EndTime:   w.EndTime,
					Enabled:   true,
				}
				if w.Enabled != nil {
					ra.Enabled = *w.Enabled
				}
				if w.MaxPartySize != nil {
					ra.MaxPartySize = *w.MaxPartySize
				}
				if err := s.resRepo.UpsertAvailability(ra); err != nil {
					return err
				}
			}
			return nil
		}},
	})

	saga.OnCommit = func(completed int) {
		if err := s.clientRepo.UpdateFields(clientID, map[string]interface{}{
			"onboarding_step": completed,
		}); err != nil {
			log.Printf("⚠️ failed to persist onboarding progress: %v", err)
		}
	}

	completed, runErr := saga.Run(ctx, client.OnboardingStep)
	result := &FinalizeResult{Completed: completed, Total: saga.Len()}

	if runErr != nil {
		var stepErr *onboarding.StepError
		if errors.As(runErr, &stepErr) {
			result.FailedStep = stepErr.Name
		}
		return result, runErr
	}

	if err := s.clientRepo.UpdateFields(clientID, map[string]interface{}{
		"onboarding_completed": true,
		"onboarding_step":      0,
	}); err != nil {
		return result, err
	}

	result.Done = true
	s.audit.Record(userID, clientID, "finalize", "onboarding", clientID.String(), nil, req)
	log.Printf("✅ Onboarding finalized for client %s", clientID)
	return result, nil
}
