package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/pkg/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientService struct {
	clientRepo repositories.ClientRepo
	subRepo    repositories.SubscriptionRepo
	upload     *upload.Service
	audit      *audit.Service
}

func NewClientService(
	clientRepo repositories.ClientRepo,
	subRepo repositories.SubscriptionRepo,
	uploadSvc *upload.Service,
	auditSvc *audit.Service,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		subRepo:    subRepo,
		upload:     uploadSvc,
		audit:      auditSvc,
	}
}

// GetClient retrieves the tenant record
func (s *ClientService) GetClient(clientID uuid.UUID) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, err
	}
	return client, nil
}

// RouteState resolves where the dashboard router must land for this
// user's auth and billing situation.
func (s *ClientService) RouteState(userID, clientID uuid.UUID) (session.RouteState, error) {
	identity := &session.Identity{UserID: userID}

	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session.RouteFor(identity, nil, nil), nil
		}
		return "", err
	}

	sub, err := s.subRepo.GetActiveByClient(clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session.RouteFor(identity, client, nil), nil
		}
		return "", err
	}

	return session.RouteFor(identity, client, sub), nil
}

// UpdateProfile edits the client's profile fields
func (s *ClientService) UpdateProfile(userID, clientID uuid.UUID, req *models.UpdateClientRequest) (*models.Client, error) {
	client, err := s.GetClient(clientID)
	if err != nil {
		return nil, err
	}
	before := *client

	if req.Name != nil {
		if *req.Name == "" {
			return nil, errors.New("name is required")
		}
		client.Name = *req.Name
	}
	if req.BusinessName != nil {
		client.BusinessName = *req.BusinessName
	}
	if req.ProfileImageURL != nil {
		client.ProfileImageURL = *req.ProfileImageURL
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "update", "client", client.ID.String(), before, client)
	return client, nil
}

// UpdatePreferences sets theme and sidebar mode
func (s *ClientService) UpdatePreferences(userID, clientID uuid.UUID, req *models.UpdatePreferencesRequest) (*models.Client, error) {
	client, err := s.GetClient(clientID)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		if *req.Theme != models.ThemeLight && *req.Theme != models.ThemeDark {
			return nil, errors.New("invalid theme")
		}
		client.Theme = *req.Theme
	}
	if req.SidebarMode != nil {
		switch *req.SidebarMode {
		case models.SidebarNormal, models.SidebarExpanded, models.SidebarHidden:
			client.SidebarMode = *req.SidebarMode
		default:
			return nil, errors.New("invalid sidebar mode")
		}
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

// UploadProfileImage stores a new profile image and updates the client
func (s *ClientService) UploadProfileImage(ctx context.Context, userID, clientID uuid.UUID, fileHeader *multipart.FileHeader) (*models.Client, error) {
	result, err := s.upload.UploadMultipart(ctx, fileHeader, upload.ImageOptions("profiles"))
	if err != nil {
		return nil, err
	}

	url := result.URL
	return s.UpdateProfile(userID, clientID, &models.UpdateClientRequest{ProfileImageURL: &url})
}
