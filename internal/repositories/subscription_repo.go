package repositories

import (
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepo interface {
	GetActiveByClient(clientID uuid.UUID) (*models.Subscription, error)
	GetByClient(clientID uuid.UUID) ([]models.Subscription, error)
	Create(sub *models.Subscription) error
	Update(sub *models.Subscription) error

	// ActivatePlan deactivates any active subscription and inserts a
	// new active one, preserving the at-most-one-active invariant
	ActivatePlan(clientID uuid.UUID, plan string, periodEnd time.Time) (*models.Subscription, error)

	// AddPurchasedTokens credits a token top-up onto the active
	// subscription
	AddPurchasedTokens(clientID uuid.UUID, tokens int) error

	// ConsumeTokens debits spendable balance, plan tokens first
	ConsumeTokens(clientID uuid.UUID, tokens int) error
}

type subscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) SubscriptionRepo {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) GetActiveByClient(clientID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("client_id = ? AND status = ?", clientID, models.SubscriptionActive).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepo) GetByClient(clientID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepo) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepo) Update(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *subscriptionRepo) ActivatePlan(clientID uuid.UUID, plan string, periodEnd time.Time) (*models.Subscription, error) {
	var sub *models.Subscription

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).
			Where("client_id = ? AND status = ?", clientID, models.SubscriptionActive).
			Update("status", models.SubscriptionInactive).Error; err != nil {
			return err
		}

		sub = &models.Subscription{
			ClientID:         clientID,
			Plan:             plan,
			Status:           models.SubscriptionActive,
			TokensRemaining:  models.PlanTokenAllowance(plan),
			CurrentPeriodEnd: &periodEnd,
		}
		return tx.Create(sub).Error
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (r *subscriptionRepo) AddPurchasedTokens(clientID uuid.UUID, tokens int) error {
	return r.db.Model(&models.Subscription{}).
		Where("client_id = ? AND status = ?", clientID, models.SubscriptionActive).
		UpdateColumn("tokens_bought_separately", gorm.Expr("tokens_bought_separately + ?", tokens)).Error
}

func (r *subscriptionRepo) ConsumeTokens(clientID uuid.UUID, tokens int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var sub models.Subscription
		if err := tx.Where("client_id = ? AND status = ?", clientID, models.SubscriptionActive).
			Order("created_at DESC").
			First(&sub).Error; err != nil {
			return err
		}

		// Plan tokens are spent before purchased top-ups
		fromPlan := tokens
		if fromPlan > sub.TokensRemaining {
			fromPlan = sub.TokensRemaining
		}
		fromPurchased := tokens - fromPlan
		if fromPurchased > sub.TokensBoughtSeparately {
			fromPurchased = sub.TokensBoughtSeparately
		}

		return tx.Model(&models.Subscription{}).
			Where("id = ?", sub.ID).
			Updates(map[string]interface{}{
				"tokens_remaining":         sub.TokensRemaining - fromPlan,
				"tokens_bought_separately": sub.TokensBoughtSeparately - fromPurchased,
			}).Error
	})
}
