package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// requireIdentity pulls the signed-in user and client out of the auth
// middleware locals. On failure the error response is already written
// and ok is false.
func requireIdentity(c *fiber.Ctx) (userID, clientID uuid.UUID, ok bool) {
	userIDStr, valid := c.Locals("userID").(string)
	if !valid || userIDStr == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
		return uuid.Nil, uuid.Nil, false
	}
	clientIDStr, valid := c.Locals("clientID").(string)
	if !valid || clientIDStr == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized: client_id not found in context",
		})
		return uuid.Nil, uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user_id",
		})
		return uuid.Nil, uuid.Nil, false
	}
	clientID, err = uuid.Parse(clientIDStr)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client_id",
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, clientID, true
}

// sessionID identifies the dashboard session for ephemeral chat
// state. Falls back to the client scope when the header is absent.
func sessionID(c *fiber.Ctx, clientID uuid.UUID) string {
	if sid := c.Get("X-Session-ID"); sid != "" {
		return sid
	}
	return clientID.String()
}
