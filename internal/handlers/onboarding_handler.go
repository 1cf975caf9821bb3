package handlers

import (
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
)

type OnboardingHandler struct {
	onboardingService *services.OnboardingService
}

func NewOnboardingHandler(onboardingService *services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
	}
}

// GetSteps godoc
// @Summary Get the onboarding wizard steps
// @Tags Onboarding
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} onboarding.Step
// @Router /onboarding/steps [get]
func (h *OnboardingHandler) GetSteps(c *fiber.Ctx) error {
	_, _, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	return c.JSON(h.onboardingService.Steps())
}

// Finalize godoc
// @Summary Finalize onboarding
// @Description Fans the wizard draft out into the client's initial resources. A failed run can be retried and resumes from the first uncommitted step.
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param draft body services.FinalizeRequest true "Wizard draft"
// @Success 200 {object} services.FinalizeResult
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /onboarding/finalize [post]
func (h *OnboardingHandler) Finalize(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req services.FinalizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.onboardingService.Finalize(c.Context(), userID, clientID, &req)
	if err != nil {
		status := fiber.StatusBadRequest
		if result != nil && result.FailedStep != "" {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{
			"error":  err.Error(),
			"result": result,
		})
	}

	return c.JSON(result)
}
