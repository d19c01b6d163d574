package memory

import (
	"context"
	"sync"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// savingRepository implements repositories.SavingRepository
type savingRepository struct {
	mu      sync.RWMutex
	savings map[uint]domain.Saving
	order   []uint
	nextID  uint
}

// NewSavingRepository creates a new in-memory savings repository
func NewSavingRepository() repositories.SavingRepository {
	return &savingRepository{savings: make(map[uint]domain.Saving), nextID: 1}
}

// Create stores a new savings account and assigns its ID
func (r *savingRepository) Create(ctx context.Context, saving *domain.Saving) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	saving.ID = r.nextID
	r.nextID++
	r.savings[saving.ID] = *saving
	r.order = append(r.order, saving.ID)
	return nil
}

// GetByID gets a savings account by ID
func (r *savingRepository) GetByID(ctx context.Context, id uint) (*domain.Saving, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	saving, ok := r.savings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &saving, nil
}

// GetByMemberID gets the savings account owned by a member
func (r *savingRepository) GetByMemberID(ctx context.Context, memberID uint) (*domain.Saving, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if saving := r.savings[id]; saving.MemberID == memberID {
			return &saving, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Update merges patch into the stored savings account
func (r *savingRepository) Update(ctx context.Context, id uint, patch *domain.SavingPatch) (*domain.Saving, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saving, ok := r.savings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.TotalSavings != nil {
		saving.TotalSavings = *patch.TotalSavings
	}
	if patch.LastUpdate != nil {
		saving.LastUpdate = *patch.LastUpdate
	}
	r.savings[id] = saving
	return &saving, nil
}

// List lists all savings accounts in insertion order
func (r *savingRepository) List(ctx context.Context) ([]*domain.Saving, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	savings := make([]*domain.Saving, 0, len(r.order))
	for _, id := range r.order {
		saving := r.savings[id]
		savings = append(savings, &saving)
	}
	return savings, nil
}
