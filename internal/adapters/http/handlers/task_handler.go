package handlers

import (
	"errors"

	"coopfund/internal/core/domain"
	"coopfund/internal/core/services"
	"coopfund/internal/pkg/response"
	"coopfund/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles administrative task endpoints
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListPending lists tasks still awaiting action
func (h *TaskHandler) ListPending(c *fiber.Ctx) error {
	tasks, err := h.taskService.ListPending(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list tasks")
	}
	return response.Success(c, "Tasks retrieved successfully", tasks)
}

// ListByType lists tasks of the given type
func (h *TaskHandler) ListByType(c *fiber.Ctx) error {
	taskType := c.Params("type")
	if taskType == "" {
		return response.BadRequest(c, "Task type is required")
	}

	tasks, err := h.taskService.ListByType(c.Context(), taskType)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tasks")
	}
	return response.Success(c, "Tasks retrieved successfully", tasks)
}

// Get gets a task by ID
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return response.NotFound(c, "Task not found")
		}
		return response.InternalServerError(c, "Failed to get task")
	}
	return response.Success(c, "Task retrieved successfully", task)
}

// Create stores a new task
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return response.ValidationFailed(c, validate.Message(err), validate.Fields(err))
	}

	task, err := h.taskService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTaskStatus):
			return response.BadRequest(c, "Invalid task status")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Assignee not found")
		default:
			return response.InternalServerError(c, "Failed to create task")
		}
	}
	return response.Created(c, "Task created successfully", task)
}

// Update applies a partial update to a task
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid task ID")
	}

	var input services.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.taskService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			return response.NotFound(c, "Task not found")
		case errors.Is(err, domain.ErrInvalidTaskStatus):
			return response.BadRequest(c, "Invalid task status")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Assignee not found")
		default:
			return response.InternalServerError(c, "Failed to update task")
		}
	}
	return response.Success(c, "Task updated successfully", task)
}

// ListMine lists tasks assigned to the authenticated user
func (h *TaskHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	tasks, err := h.taskService.ListByAssignee(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tasks")
	}
	return response.Success(c, "Tasks retrieved successfully", tasks)
}
