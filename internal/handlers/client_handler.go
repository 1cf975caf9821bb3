package handlers

import (
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// GetMe godoc
// @Summary Get the signed-in client profile
// @Tags Clients
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]interface{}
// @Router /clients/me [get]
func (h *ClientHandler) GetMe(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	client, err := h.clientService.GetClient(clientID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(client)
}

// GetRouteState godoc
// @Summary Resolve the dashboard route for this session
// @Description Returns login, plan_selection, onboarding or app depending on auth and billing state
// @Tags Clients
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]interface{}
// @Router /clients/me/route [get]
func (h *ClientHandler) GetRouteState(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	route, err := h.clientService.RouteState(userID, clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"route": route})
}

// UpdateProfile godoc
// @Summary Update the client profile
// @Tags Clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param client body models.UpdateClientRequest true "Fields to update"
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Router /clients/me [put]
func (h *ClientHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	client, err := h.clientService.UpdateProfile(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(client)
}

// UpdatePreferences godoc
// @Summary Update dashboard preferences
// @Description Theme (light/dark) and sidebar mode (normal/expanded/hidden)
// @Tags Clients
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param preferences body models.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Router /clients/me/preferences [put]
func (h *ClientHandler) UpdatePreferences(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	client, err := h.clientService.UpdatePreferences(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(client)
}

// UploadProfileImage godoc
// @Summary Upload a profile image
// @Tags Clients
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param file formData file true "Image file"
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Router /clients/me/image [post]
func (h *ClientHandler) UploadProfileImage(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	client, err := h.clientService.UploadProfileImage(c.Context(), userID, clientID, fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(client)
}
