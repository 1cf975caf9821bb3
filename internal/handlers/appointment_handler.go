package handlers

import (
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AppointmentHandler struct {
	apptService *services.AppointmentService
}

func NewAppointmentHandler(apptService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		apptService: apptService,
	}
}

// CreateAppointment godoc
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param appointment body models.CreateAppointmentRequest true "Appointment data"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} map[string]interface{}
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	appt, err := h.apptService.CreateAppointment(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(appt)
}

// GetAppointmentBoard godoc
// @Summary Get the appointments board
// @Tags Appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} board.Column[models.Appointment]
// @Router /appointments/board [get]
func (h *AppointmentHandler) GetAppointmentBoard(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	columns, err := h.apptService.AppointmentBoard(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(columns)
}

// ListAppointments godoc
// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.Appointment
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	appts, err := h.apptService.ListAppointments(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(appts)
}

// GetAppointment godoc
// @Summary Get an appointment
// @Tags Appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} map[string]interface{}
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	appt, err := h.apptService.GetAppointment(clientID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(appt)
}

// UpdateAppointment godoc
// @Summary Update an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Appointment ID"
// @Param appointment body models.UpdateAppointmentRequest true "Fields to update"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} map[string]interface{}
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) UpdateAppointment(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	appt, err := h.apptService.UpdateAppointment(userID, clientID, c.Params("id"), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(appt)
}

// MoveAppointment godoc
// @Summary Move an appointment between board columns
// @Tags Appointments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Appointment ID"
// @Param move body object{status=string} true "Target status"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} map[string]interface{}
// @Router /appointments/{id}/move [patch]
func (h *AppointmentHandler) MoveAppointment(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	appt, err := h.apptService.MoveAppointment(userID, clientID, c.Params("id"), req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(appt)
}

// DeleteAppointment godoc
// @Summary Delete an appointment
// @Tags Appointments
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]interface{}
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.apptService.DeleteAppointment(userID, clientID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Appointment deleted"})
}
