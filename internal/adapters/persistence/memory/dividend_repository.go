package memory

import (
	"context"
	"sync"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// dividendRepository implements repositories.DividendRepository.
// Dividends are immutable after creation; there is no update.
type dividendRepository struct {
	mu        sync.RWMutex
	dividends map[uint]domain.Dividend
	order     []uint
	nextID    uint
}

// NewDividendRepository creates a new in-memory dividend repository
func NewDividendRepository() repositories.DividendRepository {
	return &dividendRepository{dividends: make(map[uint]domain.Dividend), nextID: 1}
}

// Create stores a new dividend and assigns its ID
func (r *dividendRepository) Create(ctx context.Context, dividend *domain.Dividend) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dividend.ID = r.nextID
	r.nextID++
	r.dividends[dividend.ID] = *dividend
	r.order = append(r.order, dividend.ID)
	return nil
}

// GetByID gets a dividend by ID
func (r *dividendRepository) GetByID(ctx context.Context, id uint) (*domain.Dividend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dividend, ok := r.dividends[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dividend, nil
}

// List lists all dividends in insertion order
func (r *dividendRepository) List(ctx context.Context) ([]*domain.Dividend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dividends := make([]*domain.Dividend, 0, len(r.order))
	for _, id := range r.order {
		dividend := r.dividends[id]
		dividends = append(dividends, &dividend)
	}
	return dividends, nil
}

// GetLatest gets the dividend with the most recent distribution date
func (r *dividendRepository) GetLatest(ctx context.Context) (*domain.Dividend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.Dividend
	for _, id := range r.order {
		dividend := r.dividends[id]
		if latest == nil || dividend.DistributionDate.After(latest.DistributionDate) {
			latest = &dividend
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

// distributionRepository implements repositories.DividendDistributionRepository
type distributionRepository struct {
	mu            sync.RWMutex
	distributions map[uint]domain.DividendDistribution
	order         []uint
	nextID        uint
}

// NewDividendDistributionRepository creates a new in-memory distribution repository
func NewDividendDistributionRepository() repositories.DividendDistributionRepository {
	return &distributionRepository{distributions: make(map[uint]domain.DividendDistribution), nextID: 1}
}

// Create stores a new distribution and assigns its ID
func (r *distributionRepository) Create(ctx context.Context, dist *domain.DividendDistribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dist.ID = r.nextID
	r.nextID++
	r.distributions[dist.ID] = *dist
	r.order = append(r.order, dist.ID)
	return nil
}

// GetByID gets a distribution by ID
func (r *distributionRepository) GetByID(ctx context.Context, id uint) (*domain.DividendDistribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dist, ok := r.distributions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dist, nil
}

// ListByDividendID lists the per-member shares of a dividend
func (r *distributionRepository) ListByDividendID(ctx context.Context, dividendID uint) ([]*domain.DividendDistribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var dists []*domain.DividendDistribution
	for _, id := range r.order {
		if dist := r.distributions[id]; dist.DividendID == dividendID {
			dists = append(dists, &dist)
		}
	}
	return dists, nil
}

// ListByMemberID lists a member's dividend shares
func (r *distributionRepository) ListByMemberID(ctx context.Context, memberID uint) ([]*domain.DividendDistribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var dists []*domain.DividendDistribution
	for _, id := range r.order {
		if dist := r.distributions[id]; dist.MemberID == memberID {
			dists = append(dists, &dist)
		}
	}
	return dists, nil
}
