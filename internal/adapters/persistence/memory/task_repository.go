package memory

import (
	"context"
	"sync"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// taskRepository implements repositories.TaskRepository
type taskRepository struct {
	mu     sync.RWMutex
	tasks  map[uint]domain.Task
	order  []uint
	nextID uint
}

// NewTaskRepository creates a new in-memory task repository
func NewTaskRepository() repositories.TaskRepository {
	return &taskRepository{tasks: make(map[uint]domain.Task), nextID: 1}
}

// Create stores a new task and assigns its ID
func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = *task
	r.order = append(r.order, task.ID)
	return nil
}

// GetByID gets a task by ID
func (r *taskRepository) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &task, nil
}

// Update merges patch into the stored task
func (r *taskRepository) Update(ctx context.Context, id uint, patch *domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.AssignedToUserID != nil {
		task.AssignedToUserID = patch.AssignedToUserID
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	r.tasks[id] = task
	return &task, nil
}

// List lists all tasks in insertion order
func (r *taskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(r.order))
	for _, id := range r.order {
		task := r.tasks[id]
		tasks = append(tasks, &task)
	}
	return tasks, nil
}

// ListPending lists tasks still awaiting action
func (r *taskRepository) ListPending(ctx context.Context) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*domain.Task
	for _, id := range r.order {
		if task := r.tasks[id]; task.Status == domain.TaskPending {
			tasks = append(tasks, &task)
		}
	}
	return tasks, nil
}

// ListByType lists tasks of the given type
func (r *taskRepository) ListByType(ctx context.Context, taskType string) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*domain.Task
	for _, id := range r.order {
		if task := r.tasks[id]; task.Type == taskType {
			tasks = append(tasks, &task)
		}
	}
	return tasks, nil
}

// ListByAssignee lists tasks assigned to a user
func (r *taskRepository) ListByAssignee(ctx context.Context, userID uint) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*domain.Task
	for _, id := range r.order {
		if task := r.tasks[id]; task.AssignedToUserID != nil && *task.AssignedToUserID == userID {
			tasks = append(tasks, &task)
		}
	}
	return tasks, nil
}
