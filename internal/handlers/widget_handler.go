package handlers

import (
	"strconv"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type WidgetHandler struct {
	widgetService *services.WidgetService
}

func NewWidgetHandler(widgetService *services.WidgetService) *WidgetHandler {
	return &WidgetHandler{
		widgetService: widgetService,
	}
}

// GetConfig godoc
// @Summary Get the chat widget config
// @Tags Widget
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} models.WidgetConfig
// @Router /widget/config [get]
func (h *WidgetHandler) GetConfig(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	cfg, err := h.widgetService.GetConfig(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(cfg)
}

// UpdateConfig godoc
// @Summary Update the chat widget config
// @Tags Widget
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param config body models.UpsertWidgetConfigRequest true "Widget config"
// @Success 200 {object} models.WidgetConfig
// @Failure 400 {object} map[string]interface{}
// @Router /widget/config [put]
func (h *WidgetHandler) UpdateConfig(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.UpsertWidgetConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	cfg, err := h.widgetService.UpsertConfig(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(cfg)
}

// GetEmbedScript godoc
// @Summary Get the copy-paste embed script
// @Tags Widget
// @Produce plain
// @Param Authorization header string true "Bearer token"
// @Success 200 {string} string "Script tag"
// @Router /widget/embed [get]
func (h *WidgetHandler) GetEmbedScript(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	script, err := h.widgetService.EmbedScript(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.SendString(script)
}

// GetShareQR godoc
// @Summary Get a QR code for the public chat page
// @Tags Widget
// @Produce png
// @Param Authorization header string true "Bearer token"
// @Param size query int false "Image size in pixels" default(256)
// @Success 200 {string} binary "PNG image"
// @Router /widget/qr [get]
func (h *WidgetHandler) GetShareQR(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	size, _ := strconv.Atoi(c.Query("size", "256"))

	png, err := h.widgetService.ShareQR(clientID, size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// GetPublicConfig godoc
// @Summary Get widget config for an embedded page
// @Description Unauthenticated lookup used by the widget script itself
// @Tags Widget
// @Produce json
// @Param clientId path string true "Client ID"
// @Success 200 {object} models.WidgetConfig
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /widget/public/{clientId} [get]
func (h *WidgetHandler) GetPublicConfig(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("clientId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client ID",
		})
	}

	cfg, err := h.widgetService.GetConfig(clientID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if !cfg.Enabled {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Widget is disabled",
		})
	}

	return c.JSON(cfg)
}
