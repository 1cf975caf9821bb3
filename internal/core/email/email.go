package email

import (
	"log"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/config"
)

// Provider defines the interface for email providers
type Provider interface {
	SendEmail(to, subject, body string) error
	GetProviderName() string
}

// Service wraps the email provider. When no provider is configured the
// service is a no-op, reminder email silently degrades.
type Service struct {
	provider Provider
}

// NewService builds the email service from configuration
func NewService(cfg *config.Config) *Service {
	if cfg.EmailProvider == "resend" && cfg.ResendAPIKey != "" {
		log.Printf("📧 Using email provider: resend")
		return &Service{provider: NewResendProvider(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName)}
	}

	log.Println("📧 No email provider configured, email delivery disabled")
	return &Service{}
}

// NewServiceWithProvider creates the service with a custom provider
// (for testing)
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

// Enabled reports whether a provider is configured
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// SendEmail sends an HTML email. A nil provider skips silently.
func (s *Service) SendEmail(to, subject, body string) error {
	if s.provider == nil {
		return nil
	}
	return s.provider.SendEmail(to, subject, body)
}

// GetProviderName returns the current provider name
func (s *Service) GetProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}
