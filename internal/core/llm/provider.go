package llm

import (
	"context"
	"fmt"
)

// Turn is one prior conversation turn passed for continuity
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// Result is a completed generation. TokensUsed feeds the usage ledger.
type Result struct {
	Text       string
	TokensUsed int
}

// Provider interface for the supported AI providers
type Provider interface {
	GenerateChat(ctx context.Context, systemPrompt string, turns []Turn) (*Result, error)
	GetProviderName() string
}

// ProviderType for the factory
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGroq   ProviderType = "groq"
)

// ProviderConfig to create a provider
type ProviderConfig struct {
	Type ProviderType

	// API keys
	OpenAIKey string
	GroqKey   string

	// Model config
	Model       string
	Temperature float32
	MaxTokens   int
}

// NewProvider factory to create an LLM provider
func NewProvider(cfg *ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	case ProviderGroq:
		if cfg.GroqKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required")
		}
		return NewGroqProvider(cfg.GroqKey, cfg.Model, cfg.Temperature, cfg.MaxTokens), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}
