package upload

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/config"
)

// Service wraps the configured storage provider
type Service struct {
	provider Provider
}

// NewService builds the upload service from configuration.
// Providers: local (default), s3, cloudinary.
func NewService(cfg *config.Config) (*Service, error) {
	var provider Provider
	var err error

	switch cfg.UploadProvider {
	case "s3":
		provider, err = NewS3Provider(cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Region, cfg.S3Bucket)
	case "cloudinary":
		provider, err = NewCloudinaryProvider(cfg.CloudinaryURL)
	default:
		provider, err = NewLocalProvider(cfg.UploadDir, cfg.AppBaseURL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create upload provider: %w", err)
	}

	log.Printf("📦 Using upload provider: %s", provider.GetProviderName())

	return &Service{provider: provider}, nil
}

// NewServiceWithProvider creates the service with a custom provider
// (for testing)
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

func (s *Service) Upload(ctx context.Context, file io.Reader, filename string, opts *Options) (*Result, error) {
	return s.provider.Upload(ctx, file, filename, opts)
}

func (s *Service) UploadMultipart(ctx context.Context, fileHeader *multipart.FileHeader, opts *Options) (*Result, error) {
	return s.provider.UploadMultipart(ctx, fileHeader, opts)
}

func (s *Service) Delete(ctx context.Context, publicID string) error {
	return s.provider.Delete(ctx, publicID)
}

// SignedURL issues a time-limited download URL for a stored file
func (s *Service) SignedURL(ctx context.Context, publicID string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return s.provider.SignedURL(ctx, publicID, expiry)
}

func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
