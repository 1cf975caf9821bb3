package auth

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateUser(user *DashboardUser) error {
	return r.db.Create(user).Error
}

func (r *Repository) GetUserByEmail(email string) (*DashboardUser, error) {
	var user DashboardUser
	err := r.db.First(&user, "email = ? AND is_active = ?", email, true).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByID(userID string) (*DashboardUser, error) {
	var user DashboardUser
	err := r.db.First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByRefreshToken(refreshToken string) (*DashboardUser, error) {
	var user DashboardUser
	err := r.db.First(&user, "refresh_token = ? AND refresh_token_expires_at > ?", refreshToken, time.Now()).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&DashboardUser{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) UpdateRefreshToken(userID, refreshToken string, expiresAt time.Time) error {
	return r.db.Model(&DashboardUser{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":            refreshToken,
			"refresh_token_expires_at": expiresAt,
		}).Error
}

func (r *Repository) RevokeRefreshToken(userID string) error {
	return r.db.Model(&DashboardUser{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":            "",
			"refresh_token_expires_at": nil,
		}).Error
}

func (r *Repository) UpdateLastLogin(userID string) error {
	now := time.Now()
	return r.db.Model(&DashboardUser{}).
		Where("id = ?", userID).
		Update("last_login_at", now).Error
}
