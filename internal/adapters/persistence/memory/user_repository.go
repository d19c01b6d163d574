// Package memory implements the repository interfaces over process-local
// maps. Each repository owns its own map, monotonic ID counter and mutex;
// entities are stored by value so callers never share memory with the store.
package memory

import (
	"context"
	"sync"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// userRepository implements repositories.UserRepository
type userRepository struct {
	mu     sync.RWMutex
	users  map[uint]domain.User
	order  []uint
	nextID uint
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository() repositories.UserRepository {
	return &userRepository{users: make(map[uint]domain.User), nextID: 1}
}

// Create stores a new user and assigns its ID
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

// GetByUsername gets a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if user := r.users[id]; user.Username == username {
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Update merges patch into the stored user. The ID is not patchable.
func (r *userRepository) Update(ctx context.Context, id uint, patch *domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		user.Password = *patch.Password
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Avatar != nil {
		user.Avatar = patch.Avatar
	}
	r.users[id] = user
	return &user, nil
}

// List lists all users in insertion order
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		user := r.users[id]
		users = append(users, &user)
	}
	return users, nil
}

// ExistsByUsername checks if username is taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}
