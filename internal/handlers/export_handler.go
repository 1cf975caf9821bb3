package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ExportHandler struct {
	taskService        *services.TaskService
	appointmentService *services.AppointmentService
	reservationService *services.ReservationService
}

func NewExportHandler(
	taskService *services.TaskService,
	appointmentService *services.AppointmentService,
	reservationService *services.ReservationService,
) *ExportHandler {
	return &ExportHandler{
		taskService:        taskService,
		appointmentService: appointmentService,
		reservationService: reservationService,
	}
}

// Export godoc
// @Summary Export a board as a file
// @Description Renders the tasks, appointments or reservations board as an Excel or PDF download
// @Tags Export
// @Produce application/octet-stream
// @Param Authorization header string true "Bearer token"
// @Param resource path string true "Board to export" Enums(tasks, appointments, reservations)
// @Param format query string false "File format" Enums(excel, pdf) default(excel)
// @Success 200 {string} binary "Exported file"
// @Failure 400 {object} map[string]interface{}
// @Router /export/{resource} [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var data *export.Data
	switch c.Params("resource") {
	case "tasks":
		tasks, err := h.taskService.ListTasks(clientID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		data = export.BuildTaskExport(tasks)
	case "appointments":
		appointments, err := h.appointmentService.ListAppointments(clientID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		data = export.BuildAppointmentExport(appointments)
	case "reservations":
		reservations, err := h.reservationService.ListReservations(clientID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		data = export.BuildReservationExport(reservations)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown export resource",
		})
	}

	exporter, err := export.NewExporter(export.Format(c.Query("format", "excel")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var buf bytes.Buffer
	if err := exporter.Export(data, &buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	filename := fmt.Sprintf("%s-%s%s",
		c.Params("resource"), time.Now().Format("2006-01-02"), exporter.GetFileExtension())

	c.Set("Content-Type", exporter.GetContentType())
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
