package handlers

import (
	"strconv"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	auditService *audit.Service
}

func NewAuditHandler(auditService *audit.Service) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// ListAuditLogs godoc
// @Summary List audit log entries
// @Tags Audit
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param action query string false "Filter by action"
// @Param entity query string false "Filter by entity type"
// @Param entity_id query string false "Filter by entity ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(50)
// @Success 200 {object} audit.ListResponse
// @Router /audit [get]
func (h *AuditHandler) ListAuditLogs(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))

	resp, err := h.auditService.List(audit.Filter{
		ClientID: &clientID,
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(resp)
}
