package services

import (
	"encoding/json"
	"errors"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/widget"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/config"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WidgetService struct {
	widgetRepo repositories.WidgetConfigRepo
	audit      *audit.Service
	cfg        *config.Config
}

func NewWidgetService(widgetRepo repositories.WidgetConfigRepo, auditSvc *audit.Service, cfg *config.Config) *WidgetService {
	return &WidgetService{
		widgetRepo: widgetRepo,
		audit:      auditSvc,
		cfg:        cfg,
	}
}

// GetConfig returns the widget config, or defaults when none was
// saved yet
func (s *WidgetService) GetConfig(clientID uuid.UUID) (*models.WidgetConfig, error) {
	cfg, err := s.widgetRepo.GetByClient(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.WidgetConfig{
				ClientID:       clientID,
				Position:       "bottom-right",
				PrimaryColor:   "#4F46E5",
				SecondaryColor: "#FFFFFF",
				Enabled:        true,
			}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// UpsertConfig creates or replaces the widget config
func (s *WidgetService) UpsertConfig(userID, clientID uuid.UUID, req *models.UpsertWidgetConfigRequest) (*models.WidgetConfig, error) {
	cfg, err := s.GetConfig(clientID)
	if err != nil {
		return nil, err
	}

	if req.Position != nil {
		cfg.Position = *req.Position
	}
	if req.PrimaryColor != nil {
		cfg.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		cfg.SecondaryColor = *req.SecondaryColor
	}
	if req.WelcomeMessage != nil {
		cfg.WelcomeMessage = *req.WelcomeMessage
	}
	if req.LogoURL != nil {
		cfg.LogoURL = *req.LogoURL
	}
	if req.Enabled != nil {
		cfg.Enabled = *req.Enabled
	}
	if req.Schedule != nil {
		raw, err := json.Marshal(req.Schedule)
		if err != nil {
			return nil, err
		}
		cfg.Schedule = raw
	}

	if err := s.widgetRepo.Upsert(cfg); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "upsert", "widget_config", cfg.ID.String(), nil, cfg)
	return cfg, nil
}

// EmbedScript renders the copy-paste script tag for the client's site
func (s *WidgetService) EmbedScript(clientID uuid.UUID) (string, error) {
	cfg, err := s.GetConfig(clientID)
	if err != nil {
		return "", err
	}
	return widget.GenerateEmbedScript(s.cfg.WidgetScriptURL, s.cfg.AppBaseURL, clientID, cfg), nil
}

// ShareQR renders a QR code pointing at the public chat page
func (s *WidgetService) ShareQR(clientID uuid.UUID, size int) ([]byte, error) {
	return widget.GenerateShareQR(s.cfg.AppBaseURL, clientID, size)
}
