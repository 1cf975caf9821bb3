package handlers

import (
	"errors"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chatService *services.ChatService
	docService  *services.DocumentService
}

func NewChatHandler(chatService *services.ChatService, docService *services.DocumentService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		docService:  docService,
	}
}

// SendMessage godoc
// @Summary Send a chat message to the assistant
// @Description Pass thread_id to continue a conversation. Omit it to start a new thread.
// @Tags Chat
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param message body object{text=string,thread_id=string} true "Message"
// @Success 200 {object} services.ChatResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 402 {object} map[string]interface{}
// @Router /chat/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req struct {
		Text     string `json:"text"`
		ThreadID string `json:"thread_id,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.chatService.SendMessage(c.Context(), clientID, sessionID(c, clientID), req.ThreadID, req.Text)
	if err != nil {
		return chatError(c, err)
	}

	return c.JSON(resp)
}

// GetSessionMessages godoc
// @Summary Get the session's chat panel messages
// @Description Returns the ephemeral panel history for the dashboard session. Dropped on sign-out; durable history lives under /chat/threads.
// @Tags Chat
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param X-Session-ID header string false "Dashboard session"
// @Success 200 {array} chat.Entry
// @Router /chat/messages [get]
func (h *ChatHandler) GetSessionMessages(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	return c.JSON(h.chatService.SessionHistory(sessionID(c, clientID)))
}

// AnalyzeFile godoc
// @Summary Upload a file and ask the assistant about it
// @Tags Chat
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param file formData file true "File to analyze"
// @Param prompt formData string false "Question about the file"
// @Param thread_id formData string false "Thread to continue"
// @Success 200 {object} services.ChatResponse
// @Failure 400 {object} map[string]interface{}
// @Router /chat/analyze [post]
func (h *ChatHandler) AnalyzeFile(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	resp, err := h.chatService.AnalyzeFile(
		c.Context(), clientID, sessionID(c, clientID),
		c.FormValue("thread_id"), fileHeader, c.FormValue("prompt"),
	)
	if err != nil {
		return chatError(c, err)
	}

	return c.JSON(resp)
}

// ListThreads godoc
// @Summary List conversation threads
// @Tags Chat
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.Conversation
// @Router /chat/threads [get]
func (h *ChatHandler) ListThreads(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	threads, err := h.chatService.ListThreads(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(threads)
}

// GetHistory godoc
// @Summary Get a thread's messages
// @Tags Chat
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Thread ID"
// @Success 200 {array} models.Message
// @Failure 404 {object} map[string]interface{}
// @Router /chat/threads/{id} [get]
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	messages, err := h.chatService.History(clientID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(messages)
}

// DeleteThread godoc
// @Summary Delete a thread
// @Tags Chat
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Thread ID"
// @Success 200 {object} map[string]interface{}
// @Router /chat/threads/{id} [delete]
func (h *ChatHandler) DeleteThread(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.chatService.DeleteThread(clientID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Thread deleted"})
}

// SaveGenerated godoc
// @Summary Save the last generated reply as a document
// @Description Creates a new document, or appends to an existing one when document_id is given
// @Tags Chat
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param save body object{name=string,document_id=string,folder_id=string} true "Save target"
// @Success 200 {object} models.Document
// @Failure 400 {object} map[string]interface{}
// @Router /chat/save [post]
func (h *ChatHandler) SaveGenerated(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req struct {
		Name       string `json:"name,omitempty"`
		DocumentID string `json:"document_id,omitempty"`
		FolderID   string `json:"folder_id,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sid := sessionID(c, clientID)
	content, found := h.chatService.LastGenerated(sid)
	if !found {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No generated content pending",
		})
	}

	if req.DocumentID != "" {
		doc, err := h.docService.AppendContent(c.Context(), userID, clientID, req.DocumentID, content)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.chatService.ClearLastGenerated(sid)
		return c.JSON(doc)
	}

	if req.Name == "" {
		req.Name = "Generated document"
	}
	doc, err := h.docService.CreateDocument(c.Context(), userID, clientID, &models.CreateDocumentRequest{
		Name:     req.Name,
		Content:  content,
		FolderID: req.FolderID,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	h.chatService.ClearLastGenerated(sid)
	return c.JSON(doc)
}

func chatError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNoActiveSubscription) || errors.Is(err, services.ErrTokensExhausted) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}
