package repositories

import (
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessInfoRepo manages the single-per-client business profile
type BusinessInfoRepo interface {
	GetByClient(clientID uuid.UUID) (*models.BusinessInfo, error)
	Upsert(info *models.BusinessInfo) error
}

type businessInfoRepo struct {
	db *gorm.DB
}

func NewBusinessInfoRepo(db *gorm.DB) BusinessInfoRepo {
	return &businessInfoRepo{db: db}
}

func (r *businessInfoRepo) GetByClient(clientID uuid.UUID) (*models.BusinessInfo, error) {
	var info models.BusinessInfo
	err := r.db.Where("client_id = ?", clientID).First(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *businessInfoRepo) Upsert(info *models.BusinessInfo) error {
	var existing models.BusinessInfo
	err := r.db.Where("client_id = ?", info.ClientID).First(&existing).Error
	if err == nil {
		info.ID = existing.ID
		info.CreatedAt = existing.CreatedAt
		return r.db.Save(info).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(info).Error
}

// AssistantConfigRepo manages per-client assistant settings
type AssistantConfigRepo interface {
	GetByClient(clientID uuid.UUID) (*models.AssistantConfig, error)
	Upsert(cfg *models.AssistantConfig) error
}

type assistantConfigRepo struct {
	db *gorm.DB
}

func NewAssistantConfigRepo(db *gorm.DB) AssistantConfigRepo {
	return &assistantConfigRepo{db: db}
}

func (r *assistantConfigRepo) GetByClient(clientID uuid.UUID) (*models.AssistantConfig, error) {
	var cfg models.AssistantConfig
	err := r.db.Where("client_id = ?", clientID).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *assistantConfigRepo) Upsert(cfg *models.AssistantConfig) error {
	var existing models.AssistantConfig
	err := r.db.Where("client_id = ?", cfg.ClientID).First(&existing).Error
	if err == nil {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		return r.db.Save(cfg).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(cfg).Error
}

// WidgetConfigRepo manages the embeddable widget configuration
type WidgetConfigRepo interface {
	GetByClient(clientID uuid.UUID) (*models.WidgetConfig, error)
	Upsert(cfg *models.WidgetConfig) error
}

type widgetConfigRepo struct {
	db *gorm.DB
}

func NewWidgetConfigRepo(db *gorm.DB) WidgetConfigRepo {
	return &widgetConfigRepo{db: db}
}

func (r *widgetConfigRepo) GetByClient(clientID uuid.UUID) (*models.WidgetConfig, error) {
	var cfg models.WidgetConfig
	err := r.db.Where("client_id = ?", clientID).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *widgetConfigRepo) Upsert(cfg *models.WidgetConfig) error {
	var existing models.WidgetConfig
	err := r.db.Where("client_id = ?", cfg.ClientID).First(&existing).Error
	if err == nil {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		return r.db.Save(cfg).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(cfg).Error
}
