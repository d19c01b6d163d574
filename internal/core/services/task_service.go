package services

import (
	"context"
	"errors"
	"time"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// TaskService handles the administrative task workflow. Tasks are created
// manually here or automatically by the loan service for pending
// applications.
type TaskService struct {
	taskRepo repositories.TaskRepository
	userRepo repositories.UserRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repositories.TaskRepository, userRepo repositories.UserRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, userRepo: userRepo}
}

// CreateTaskInput represents task creation input
type CreateTaskInput struct {
	Title            string            `json:"title" validate:"required"`
	Description      string            `json:"description,omitempty"`
	Type             string            `json:"type" validate:"required"`
	Status           domain.TaskStatus `json:"status,omitempty"`
	AssignedToUserID *uint             `json:"assignedToUserId,omitempty"`
	DueDate          *time.Time        `json:"dueDate,omitempty"`
}

// Create stores a new task
func (s *TaskService) Create(ctx context.Context, input *CreateTaskInput) (*domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.TaskPending
	}
	switch status {
	case domain.TaskPending, domain.TaskInProgress, domain.TaskCompleted:
	default:
		return nil, domain.ErrInvalidTaskStatus
	}
	if input.AssignedToUserID != nil {
		if _, err := s.userRepo.GetByID(ctx, *input.AssignedToUserID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, err
		}
	}

	task := &domain.Task{
		Title:            input.Title,
		Type:             input.Type,
		Status:           status,
		AssignedToUserID: input.AssignedToUserID,
		CreatedAt:        time.Now(),
		DueDate:          input.DueDate,
	}
	if input.Description != "" {
		task.Description = &input.Description
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTaskInput represents a partial task update
type UpdateTaskInput struct {
	Title            *string            `json:"title,omitempty"`
	Description      *string            `json:"description,omitempty"`
	Status           *domain.TaskStatus `json:"status,omitempty"`
	AssignedToUserID *uint              `json:"assignedToUserId,omitempty"`
	DueDate          *time.Time         `json:"dueDate,omitempty"`
}

// Update applies a partial update to a task
func (s *TaskService) Update(ctx context.Context, id uint, input *UpdateTaskInput) (*domain.Task, error) {
	if input.Status != nil {
		switch *input.Status {
		case domain.TaskPending, domain.TaskInProgress, domain.TaskCompleted:
		default:
			return nil, domain.ErrInvalidTaskStatus
		}
	}
	if input.AssignedToUserID != nil {
		if _, err := s.userRepo.GetByID(ctx, *input.AssignedToUserID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, err
		}
	}

	task, err := s.taskRepo.Update(ctx, id, &domain.TaskPatch{
		Title:            input.Title,
		Description:      input.Description,
		Status:           input.Status,
		AssignedToUserID: input.AssignedToUserID,
		DueDate:          input.DueDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// GetByID gets a task by ID
func (s *TaskService) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// ListPending lists tasks still awaiting action
func (s *TaskService) ListPending(ctx context.Context) ([]*domain.Task, error) {
	return s.taskRepo.ListPending(ctx)
}

// ListByType lists tasks of the given type
func (s *TaskService) ListByType(ctx context.Context, taskType string) ([]*domain.Task, error) {
	return s.taskRepo.ListByType(ctx, taskType)
}

// ListByAssignee lists tasks assigned to a user
func (s *TaskService) ListByAssignee(ctx context.Context, userID uint) ([]*domain.Task, error) {
	return s.taskRepo.ListByAssignee(ctx, userID)
}
