package handlers

import (
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetBusinessInfo godoc
// @Summary Get the business profile
// @Tags Settings
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} models.BusinessInfo
// @Router /settings/business [get]
func (h *SettingsHandler) GetBusinessInfo(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	info, err := h.settingsService.GetBusinessInfo(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(info)
}

// UpdateBusinessInfo godoc
// @Summary Update the business profile
// @Description Partial update from any of the settings tabs: profile, FAQ or availability
// @Tags Settings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param info body models.UpdateBusinessInfoRequest true "Fields to update"
// @Success 200 {object} models.BusinessInfo
// @Failure 400 {object} map[string]interface{}
// @Router /settings/business [put]
func (h *SettingsHandler) UpdateBusinessInfo(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.UpdateBusinessInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	info, err := h.settingsService.UpdateBusinessInfo(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(info)
}

// GetAssistantConfig godoc
// @Summary Get the assistant settings
// @Tags Settings
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} models.AssistantConfig
// @Router /settings/assistant [get]
func (h *SettingsHandler) GetAssistantConfig(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	cfg, err := h.settingsService.GetAssistantConfig(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(cfg)
}

// UpdateAssistantConfig godoc
// @Summary Update the assistant settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param config body models.UpdateAssistantConfigRequest true "Fields to update"
// @Success 200 {object} models.AssistantConfig
// @Failure 400 {object} map[string]interface{}
// @Router /settings/assistant [put]
func (h *SettingsHandler) UpdateAssistantConfig(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.UpdateAssistantConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	cfg, err := h.settingsService.UpdateAssistantConfig(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(cfg)
}
