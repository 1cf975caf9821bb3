package audit

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service records and lists audit log entries
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Record writes one audit entry. Audit failures are logged but never
// surfaced to the caller, a mutation must not fail on bookkeeping.
func (s *Service) Record(userID, clientID uuid.UUID, action, entity, entityID string, oldValue, newValue interface{}) {
	oldJSON, err := toJSON(oldValue)
	if err != nil {
		log.Printf("⚠️ audit: failed to serialize old value: %v", err)
	}
	newJSON, err := toJSON(newValue)
	if err != nil {
		log.Printf("⚠️ audit: failed to serialize new value: %v", err)
	}

	entry := &AuditLog{
		UserID:   userID,
		ClientID: clientID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		OldValue: oldJSON,
		NewValue: newJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		log.Printf("⚠️ audit: failed to write log entry: %v", err)
	}
}

// List retrieves audit entries with filtering and pagination
func (s *Service) List(filter Filter) (*ListResponse, error) {
	query := s.db.Model(&AuditLog{})

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}

	var logs []AuditLog
	if err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}

	totalPages := int(totalCount) / filter.PageSize
	if int(totalCount)%filter.PageSize > 0 {
		totalPages++
	}

	return &ListResponse{
		Logs:       logs,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
