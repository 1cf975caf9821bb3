package handlers

import (
	"bufio"
	"fmt"
	"strconv"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/events"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// heartbeatInterval keeps idle SSE connections from being reaped by
// proxies
const heartbeatInterval = 15 * time.Second

type NotificationHandler struct {
	notifService *services.NotificationService
	bus          *events.Bus
}

func NewNotificationHandler(notifService *services.NotificationService, bus *events.Bus) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
		bus:          bus,
	}
}

// ListNotifications godoc
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param unread query bool false "Only unread"
// @Param limit query int false "Max results" default(50)
// @Success 200 {array} models.Notification
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	notifications, err := h.notifService.List(clientID, unreadOnly, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(notifications)
}

// GetUnreadCount godoc
// @Summary Get the unread badge count
// @Tags Notifications
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]interface{}
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	count, err := h.notifService.UnreadCount(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"count": count})
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags Notifications
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]interface{}
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.notifService.MarkRead(clientID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Notification marked read"})
}

// MarkAllRead godoc
// @Summary Mark all notifications read
// @Tags Notifications
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} map[string]interface{}
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.notifService.MarkAllRead(clientID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "All notifications marked read"})
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Tags Notifications
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Notification ID"
// @Success 200 {object} map[string]interface{}
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.notifService.Delete(clientID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Notification deleted"})
}

// Stream godoc
// @Summary Live notification feed
// @Description Server-sent events stream of this client's feed. Sends a heartbeat comment every 15 seconds.
// @Tags Notifications
// @Produce text/event-stream
// @Param Authorization header string true "Bearer token"
// @Success 200 {string} string "SSE stream"
// @Router /notifications/stream [get]
func (h *NotificationHandler) Stream(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ch, cancel := h.bus.Subscribe(clientID)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()

		for {
			select {
			case msg, open := <-ch:
				if !open {
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", msg)
				if err := w.Flush(); err != nil {
					return
				}
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
