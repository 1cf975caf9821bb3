package services

import (
	"encoding/json"
	"errors"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettingsService backs the tabbed settings screen: business profile,
// FAQ, availability and assistant behavior.
type SettingsService struct {
	infoRepo      repositories.BusinessInfoRepo
	assistantRepo repositories.AssistantConfigRepo
	audit         *audit.Service
}

func NewSettingsService(
	infoRepo repositories.BusinessInfoRepo,
	assistantRepo repositories.AssistantConfigRepo,
	auditSvc *audit.Service,
) *SettingsService {
	return &SettingsService{
		infoRepo:      infoRepo,
		assistantRepo: assistantRepo,
		audit:         auditSvc,
	}
}

// GetBusinessInfo returns the client's business profile, empty when
// none was saved yet
func (s *SettingsService) GetBusinessInfo(clientID uuid.UUID) (*models.BusinessInfo, error) {
	info, err := s.infoRepo.GetByClient(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.BusinessInfo{ClientID: clientID, AppointmentSlotMinutes: 30}, nil
		}
		return nil, err
	}
	return info, nil
}

// UpdateBusinessInfo applies a partial edit from one of the settings
// tabs
func (s *SettingsService) UpdateBusinessInfo(userID, clientID uuid.UUID, req *models.UpdateBusinessInfoRequest) (*models.BusinessInfo, error) {
	info, err := s.GetBusinessInfo(clientID)
	if err != nil {
		return nil, err
	}
	before := *info

	if req.Description != nil {
		info.Description = *req.Description
	}
	if req.Address != nil {
		info.Address = *req.Address
	}
	if req.Phone != nil {
		info.Phone = *req.Phone
	}
	if req.Website != nil {
		info.Website = *req.Website
	}
	if req.OpeningHours != nil {
		info.OpeningHours = *req.OpeningHours
	}
	if req.Services != nil {
		info.Services = *req.Services
	}
	if req.FAQ != nil {
		raw, err := json.Marshal(req.FAQ)
		if err != nil {
			return nil, err
		}
		info.FAQ = raw
	}
	if req.AppointmentAvailability != nil {
		raw, err := json.Marshal(req.AppointmentAvailability)
		if err != nil {
			return nil, err
		}
		info.AppointmentAvailability = raw
	}
	if req.AppointmentSlotMinutes != nil {
		if *req.AppointmentSlotMinutes <= 0 {
			return nil, errors.New("slot minutes must be positive")
		}
		info.AppointmentSlotMinutes = *req.AppointmentSlotMinutes
	}

	if err := s.infoRepo.Upsert(info); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "update", "business_info", info.ID.String(), before, info)
	return info, nil
}

// GetAssistantConfig returns the assistant settings, defaults when
// none were saved yet
func (s *SettingsService) GetAssistantConfig(clientID uuid.UUID) (*models.AssistantConfig, error) {
	cfg, err := s.assistantRepo.GetByClient(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultAssistantConfig(clientID), nil
		}
		return nil, err
	}
	return cfg, nil
}

// UpdateAssistantConfig edits assistant behavior settings
func (s *SettingsService) UpdateAssistantConfig(userID, clientID uuid.UUID, req *models.UpdateAssistantConfigRequest) (*models.AssistantConfig, error) {
	cfg, err := s.GetAssistantConfig(clientID)
	if err != nil {
		return nil, err
	}
	before := *cfg

	if req.Provider != nil {
		if *req.Provider != "openai" && *req.Provider != "groq" {
			return nil, errors.New("invalid assistant provider")
		}
		cfg.Provider = *req.Provider
	}
	if req.Model != nil {
		cfg.Model = *req.Model
	}
	if req.Temperature != nil {
		if *req.Temperature < 0 || *req.Temperature > 2 {
			return nil, errors.New("temperature must be between 0 and 2")
		}
		cfg.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		if *req.MaxTokens <= 0 {
			return nil, errors.New("max tokens must be positive")
		}
		cfg.MaxTokens = *req.MaxTokens
	}
	if req.Tone != nil {
		cfg.Tone = *req.Tone
	}
	if req.Instructions != nil {
		cfg.Instructions = *req.Instructions
	}

	if err := s.assistantRepo.Upsert(cfg); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "update", "assistant_config", cfg.ID.String(), before, cfg)
	return cfg, nil
}
