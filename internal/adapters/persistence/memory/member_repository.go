package memory

import (
	"context"
	"sync"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// memberRepository implements repositories.MemberRepository
type memberRepository struct {
	mu      sync.RWMutex
	members map[uint]domain.Member
	order   []uint
	nextID  uint
}

// NewMemberRepository creates a new in-memory member repository
func NewMemberRepository() repositories.MemberRepository {
	return &memberRepository{members: make(map[uint]domain.Member), nextID: 1}
}

// Create stores a new member and assigns its ID
func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	member.ID = r.nextID
	r.nextID++
	r.members[member.ID] = *member
	r.order = append(r.order, member.ID)
	return nil
}

// GetByID gets a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &member, nil
}

// GetByUserID gets the member linked to a user account
func (r *memberRepository) GetByUserID(ctx context.Context, userID uint) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if member := r.members[id]; member.UserID == userID {
			return &member, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetByEmployeeID gets a member by employee ID
func (r *memberRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if member := r.members[id]; member.EmployeeID == employeeID {
			return &member, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Update merges patch into the stored member. The ID is not patchable.
func (r *memberRepository) Update(ctx context.Context, id uint, patch *domain.MemberPatch) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	member, ok := r.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Department != nil {
		member.Department = *patch.Department
	}
	if patch.Position != nil {
		member.Position = *patch.Position
	}
	if patch.JoinDate != nil {
		member.JoinDate = *patch.JoinDate
	}
	if patch.PhoneNumber != nil {
		member.PhoneNumber = patch.PhoneNumber
	}
	if patch.Address != nil {
		member.Address = patch.Address
	}
	if patch.Status != nil {
		member.Status = *patch.Status
	}
	if patch.MonthlyContribution != nil {
		member.MonthlyContribution = *patch.MonthlyContribution
	}
	r.members[id] = member
	return &member, nil
}

// List lists all members in insertion order
func (r *memberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*domain.Member, 0, len(r.order))
	for _, id := range r.order {
		member := r.members[id]
		members = append(members, &member)
	}
	return members, nil
}

// ListByStatus lists members with the given status in insertion order
func (r *memberRepository) ListByStatus(ctx context.Context, status domain.MemberStatus) ([]*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var members []*domain.Member
	for _, id := range r.order {
		if member := r.members[id]; member.Status == status {
			members = append(members, &member)
		}
	}
	return members, nil
}
