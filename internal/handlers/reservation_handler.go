package handlers

import (
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReservationHandler struct {
	resService *services.ReservationService
}

func NewReservationHandler(resService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		resService: resService,
	}
}

// CreateReservation godoc
// @Summary Book a reservation
// @Tags Reservations
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param reservation body models.CreateReservationRequest true "Reservation data"
// @Success 201 {object} models.Reservation
// @Failure 400 {object} map[string]interface{}
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	res, err := h.resService.CreateReservation(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

// GetReservationBoard godoc
// @Summary Get the reservations board
// @Tags Reservations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} board.Column[models.Reservation]
// @Router /reservations/board [get]
func (h *ReservationHandler) GetReservationBoard(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	columns, err := h.resService.ReservationBoard(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(columns)
}

// ListReservations godoc
// @Summary List reservations
// @Tags Reservations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.Reservation
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	reservations, err := h.resService.ListReservations(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(reservations)
}

// GetReservation godoc
// @Summary Get a reservation
// @Tags Reservations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Reservation ID"
// @Success 200 {object} models.Reservation
// @Failure 404 {object} map[string]interface{}
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	reservation, err := h.resService.GetReservation(clientID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(reservation)
}

// UpdateReservation godoc
// @Summary Update a reservation
// @Tags Reservations
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Reservation ID"
// @Param reservation body models.UpdateReservationRequest true "Fields to update"
// @Success 200 {object} models.Reservation
// @Failure 400 {object} map[string]interface{}
// @Router /reservations/{id} [put]
func (h *ReservationHandler) UpdateReservation(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.UpdateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	res, err := h.resService.UpdateReservation(userID, clientID, c.Params("id"), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(res)
}

// MoveReservation godoc
// @Summary Move a reservation between board columns
// @Tags Reservations
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Reservation ID"
// @Param move body object{status=string} true "Target status"
// @Success 200 {object} models.Reservation
// @Failure 400 {object} map[string]interface{}
// @Router /reservations/{id}/move [patch]
func (h *ReservationHandler) MoveReservation(c *fiber.Ctx) error {
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

	res, err := h.resService.MoveReservation(userID, clientID, c.Params("id"), req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(res)
}

// DeleteReservation godoc
// @Summary Delete a reservation
// @Tags Reservations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]interface{}
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.resService.DeleteReservation(userID, clientID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Reservation deleted"})
}

// CreateReservationType godoc
// @Summary Add a reservation category
// @Tags Reservations
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param type body models.CreateReservationTypeRequest true "Category data"
// @Success 201 {object} models.ReservationType
// @Router /reservations/types [post]
func (h *ReservationHandler) CreateReservationType(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.CreateReservationTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	rt, err := h.resService.CreateReservationType(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(rt)
}

// ListReservationTypes godoc
// @Summary List reservation categories
// @Tags Reservations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.ReservationType
// @Router /reservations/types [get]
func (h *ReservationHandler) ListReservationTypes(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	types, err := h.resService.ListReservationTypes(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(types)
}

// DeleteReservationType godoc
// @Summary Delete a reservation category
// @Tags Reservations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Reservation type ID"
// @Success 200 {object} map[string]interface{}
// @Router /reservations/types/{id} [delete]
func (h *ReservationHandler) DeleteReservationType(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.resService.DeleteReservationType(userID, clientID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Reservation type deleted"})
}

// UpsertAvailability godoc
// @Summary Set a weekday reservation window
// @Tags Reservations
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param window body models.UpsertAvailabilityRequest true "Weekday window"
// @Success 200 {object} models.ReservationAvailability
// @Router /reservations/availability [put]
func (h *ReservationHandler) UpsertAvailability(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.UpsertAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	window, err := h.resService.UpsertAvailability(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(window)
}

// ListAvailability godoc
// @Summary List weekday reservation windows
// @Tags Reservations
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.ReservationAvailability
// @Router /reservations/availability [get]
func (h *ReservationHandler) ListAvailability(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	windows, err := h.resService.ListAvailability(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(windows)
}
