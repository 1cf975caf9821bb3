package payment

import (
	"fmt"
	"log"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/config"
)

// NewGateway creates a checkout gateway based on configuration
func NewGateway(cfg *config.Config) (Gateway, error) {
	switch cfg.CheckoutMode {
	case "live":
		if cfg.CheckoutAPIKey == "" {
			return nil, fmt.Errorf("CHECKOUT_API_KEY is required for live checkout mode")
		}
		if cfg.CheckoutBaseURL == "" {
			return nil, fmt.Errorf("CHECKOUT_BASE_URL is required for live checkout mode")
		}
		log.Println("💳 Using Hosted Checkout Gateway")
		return NewHostedGateway(cfg.CheckoutAPIKey, cfg.CheckoutBaseURL), nil

	case "sandbox":
		log.Println("💳 Using Sandbox Checkout Gateway")
		return NewSandboxGateway(cfg.AppBaseURL), nil

	default:
		log.Printf("⚠️  Unknown checkout mode '%s', defaulting to sandbox", cfg.CheckoutMode)
		return NewSandboxGateway(cfg.AppBaseURL), nil
	}
}
