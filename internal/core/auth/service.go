package auth

import (
	"fmt"
	"log"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db         *gorm.DB
	repo       *Repository
	jwtService *JWTService
}

func NewService(db *gorm.DB, jwtSecret string) *Service {
	return &Service{
		db:         db,
		repo:       NewRepository(db),
		jwtService: NewJWTService(jwtSecret),
	}
}

// Register creates a user account together with its tenant. The new
// client starts with onboarding incomplete and no subscription, which
// routes it through plan selection first.
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	exists, err := s.repo.EmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already registered")
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *DashboardUser
	err = s.db.Transaction(func(tx *gorm.DB) error {
		client := &models.Client{
			Name:         req.Name,
			BusinessName: req.BusinessName,
		}
		if err := tx.Create(client).Error; err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		user = &DashboardUser{
			ClientID:     client.ID,
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: passwordHash,
			IsActive:     true,
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Email, user.ID.String())

	return s.generateAuthResponse(user)
}

// Login authenticates with email and password
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(req.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("invalid email or password")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	_ = s.repo.UpdateLastLogin(user.ID.String())

	log.Printf("✅ User logged in: %s (%s)", user.Email, user.ID.String())

	return s.generateAuthResponse(user)
}

// RefreshToken rotates the token pair from a valid refresh token
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.repo.GetUserByRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh token not found or expired")
	}

	if user.ID.String() != userID {
		return nil, fmt.Errorf("refresh token user mismatch")
	}

	return s.generateAuthResponse(user)
}

// Logout revokes the user's refresh token
func (s *Service) Logout(userID string) error {
	if err := s.repo.RevokeRefreshToken(userID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	log.Printf("✅ User logged out: %s", userID)
	return nil
}

// ValidateToken validates an access token
func (s *Service) ValidateToken(accessToken string) (*TokenClaims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}
	return claims, nil
}

func (s *Service) generateAuthResponse(user *DashboardUser) (*AuthResponse, error) {
	claims := &TokenClaims{
		UserID:   user.ID.String(),
		Email:    user.Email,
		ClientID: user.ClientID.String(),
	}

	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, expiresAt, err := s.jwtService.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.repo.UpdateRefreshToken(user.ID.String(), refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User: &UserInfo{
			ID:       user.ID.String(),
			Email:    user.Email,
			Name:     user.Name,
			ClientID: user.ClientID.String(),
		},
	}, nil
}
