package handlers

import (
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask godoc
// @Summary Create a task
// @Description Create a task on the tasks board (requires authentication)
// @Tags Tasks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param task body models.CreateTaskRequest true "Task data"
// @Success 201 {object} models.Task
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	task, err := h.taskService.CreateTask(userID, clientID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTaskBoard godoc
// @Summary Get the tasks board
// @Description Tasks grouped into status columns (requires authentication)
// @Tags Tasks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} board.Column[models.Task]
// @Failure 401 {object} map[string]interface{}
// @Router /tasks/board [get]
func (h *TaskHandler) GetTaskBoard(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	columns, err := h.taskService.TaskBoard(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(columns)
}

// ListTasks godoc
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} models.Task
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	tasks, err := h.taskService.ListTasks(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(tasks)
}

// GetTask godoc
// @Summary Get a task
// @Tags Tasks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Task ID"
// @Success 200 {object} models.Task
// @Failure 404 {object} map[string]interface{}
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	task, err := h.taskService.GetTask(clientID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Task ID"
// @Param task body models.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req models.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	task, err := h.taskService.UpdateTask(userID, clientID, c.Params("id"), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(task)
}

// MoveTask godoc
// @Summary Move a task between board columns
// @Description Drops onto the same column are a no-op and echo the unchanged task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Task ID"
// @Param move body object{status=string} true "Target status"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]interface{}
// @Router /tasks/{id}/move [patch]
func (h *TaskHandler) MoveTask(c *fiber.Ctx) error {
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

	task, err := h.taskService.MoveTask(userID, clientID, c.Params("id"), req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags Tasks
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	userID, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.taskService.DeleteTask(userID, clientID, c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Task deleted"})
}
