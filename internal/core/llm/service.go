package llm

import (
	"context"
	"log"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/config"
)

// Service wraps an LLM provider for dependency injection
type Service struct {
	provider Provider
}

// NewService creates the LLM service from configuration
func NewService(cfg *config.Config) *Service {
	provider, err := NewProvider(&ProviderConfig{
		Type:      ProviderType(cfg.LLMProvider),
		OpenAIKey: cfg.OpenAIKey,
		GroqKey:   cfg.GroqKey,
		Model:     cfg.LLMModel,
	})
	if err != nil {
		log.Fatalf("❌ Failed to create LLM provider: %v", err)
	}

	log.Printf("🤖 Using LLM provider: %s", provider.GetProviderName())

	return &Service{provider: provider}
}

// NewServiceWithProvider creates the service with a custom provider
// (for testing)
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

// GenerateChat generates an assistant reply
func (s *Service) GenerateChat(ctx context.Context, systemPrompt string, turns []Turn) (*Result, error) {
	return s.provider.GenerateChat(ctx, systemPrompt, turns)
}

// GetProviderName returns the current provider name
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
