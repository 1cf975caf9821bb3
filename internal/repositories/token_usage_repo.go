package repositories

import (
	"sort"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenUsageRepo interface {
	Record(usage *models.TokenUsage) error

	// Summarize aggregates usage since a period start for the tokens
	// screen. Aggregation happens in Go so the same query works on
	// postgres and sqlite.
	Summarize(clientID uuid.UUID, since time.Time) (int, map[string]int, []models.DailyUsage, error)
}

type tokenUsageRepo struct {
	db *gorm.DB
}

func NewTokenUsageRepo(db *gorm.DB) TokenUsageRepo {
	return &tokenUsageRepo{db: db}
}

func (r *tokenUsageRepo) Record(usage *models.TokenUsage) error {
	return r.db.Create(usage).Error
}

func (r *tokenUsageRepo) Summarize(clientID uuid.UUID, since time.Time) (int, map[string]int, []models.DailyUsage, error) {
	var entries []models.TokenUsage
	err := r.db.Where("client_id = ? AND created_at >= ?", clientID, since).
		Find(&entries).Error
	if err != nil {
		return 0, nil, nil, err
	}

	total := 0
	byKind := make(map[string]int)
	byDay := make(map[string]int)

	for _, e := range entries {
		total += e.Tokens
		byKind[e.Kind] += e.Tokens
		byDay[e.CreatedAt.Format("2006-01-02")] += e.Tokens
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	daily := make([]models.DailyUsage, 0, len(days))
	for _, day := range days {
		daily = append(daily, models.DailyUsage{Date: day, Tokens: byDay[day]})
	}

	return total, byKind, daily, nil
}
