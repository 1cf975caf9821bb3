package handlers

import (
	"strconv"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct {
	docService *services.DocumentService
}

func NewDocumentHandler(docService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
	}
}

// CreateDocument godoc
// @Summary Create a text document
// @Tags Documents
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param document body models.CreateDocumentRequest true "Document data"
// @Success 201 {object} models.Document
// @Failure 400 {object} map[string]interface{}
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.CreateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	doc, err := h.docService.CreateDocument(c.Context(), userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// UploadDocument godoc
// @Summary Upload a file document
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param file formData file true "File to upload"
// @Param folder_id formData string false "Target folder"
// @Success 201 {object} models.Document
// @Failure 400 {object} map[string]interface{}
// @Router /documents/upload [post]
func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
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

	doc, err := h.docService.UploadDocument(c.Context(), userID, clientID, fileHeader, c.FormValue("folder_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GetDocumentTree godoc
// @Summary Get the folder tree
// @Description Folders plus root documents (requires authentication)
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} services.DocumentTree
// @Router /documents/tree [get]
func (h *DocumentHandler) GetDocumentTree(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	tree, err := h.docService.Tree(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(tree)
}

// GetDocument godoc
// @Summary Get a document
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Document ID"
// @Success 200 {object} models.Document
// @Failure 404 {object} map[string]interface{}
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	doc, err := h.docService.GetDocument(clientID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(doc)
}

// UpdateDocument godoc
// @Summary Update or move a document
// @Description Set move_to_root to move a document out of its folder
// @Tags Documents
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Document ID"
// @Param document body models.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} models.Document
// @Failure 400 {object} map[string]interface{}
// @Router /documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.UpdateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	doc, err := h.docService.UpdateDocument(c.Context(), userID, clientID, c.Params("id"), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(doc)
}

// DeleteDocument godoc
// @Summary Delete a document
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.docService.DeleteDocument(c.Context(), userID, clientID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Document deleted"})
}

// DownloadDocument godoc
// @Summary Get a signed download URL
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) DownloadDocument(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	url, err := h.docService.DownloadURL(c.Context(), clientID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"url": url})
}

// SearchDocuments godoc
// @Summary Semantic document search
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param q query string true "Search query"
// @Param limit query int false "Max results" default(5)
// @Success 200 {array} models.DocumentSearchResult
// @Failure 400 {object} map[string]interface{}
// @Router /documents/search [get]
func (h *DocumentHandler) SearchDocuments(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	results, err := h.docService.Search(c.Context(), clientID, c.Query("q"), limit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(results)
}

// CreateFolder godoc
// @Summary Create a folder
// @Tags Documents
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param folder body models.CreateFolderRequest true "Folder data"
// @Success 201 {object} models.Folder
// @Router /folders [post]
func (h *DocumentHandler) CreateFolder(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.CreateFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	folder, err := h.docService.CreateFolder(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(folder)
}

// ListFolderDocuments godoc
// @Summary List one folder's documents
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Folder ID"
// @Success 200 {array} models.Document
// @Router /folders/{id}/documents [get]
func (h *DocumentHandler) ListFolderDocuments(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	docs, err := h.docService.ListByFolder(clientID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(docs)
}

// DeleteFolder godoc
// @Summary Delete a folder
// @Description The folder's documents move back to the root
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Folder ID"
// @Success 200 {object} map[string]interface{}
// @Router /folders/{id} [delete]
func (h *DocumentHandler) DeleteFolder(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.docService.DeleteFolder(userID, clientID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Folder deleted"})
}
