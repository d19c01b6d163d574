package memory

import (
	"context"
	"sync"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// loanRepository implements repositories.LoanRepository
type loanRepository struct {
	mu     sync.RWMutex
	loans  map[uint]domain.Loan
	order  []uint
	nextID uint
}

// NewLoanRepository creates a new in-memory loan repository
func NewLoanRepository() repositories.LoanRepository {
	return &loanRepository{loans: make(map[uint]domain.Loan), nextID: 1}
}

// Create stores a new loan and assigns its ID
func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	loan.ID = r.nextID
	r.nextID++
	r.loans[loan.ID] = *loan
	r.order = append(r.order, loan.ID)
	return nil
}

// GetByID gets a loan by ID
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loan, ok := r.loans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &loan, nil
}

// Update merges patch into the stored loan. The ID, member, principal and
// term are fixed at application time and not patchable.
func (r *loanRepository) Update(ctx context.Context, id uint, patch *domain.LoanPatch) (*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loan, ok := r.loans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Status != nil {
		loan.Status = *patch.Status
	}
	if patch.ApprovalDate != nil {
		loan.ApprovalDate = patch.ApprovalDate
	}
	if patch.TotalRepaid != nil {
		loan.TotalRepaid = *patch.TotalRepaid
	}
	if patch.NextPaymentDue != nil {
		loan.NextPaymentDue = patch.NextPaymentDue
	}
	if patch.MonthlyPayment != nil {
		loan.MonthlyPayment = *patch.MonthlyPayment
	}
	r.loans[id] = loan
	return &loan, nil
}

// List lists all loans in insertion order
func (r *loanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loans := make([]*domain.Loan, 0, len(r.order))
	for _, id := range r.order {
		loan := r.loans[id]
		loans = append(loans, &loan)
	}
	return loans, nil
}

// ListByMemberID lists a member's loans in insertion order
func (r *loanRepository) ListByMemberID(ctx context.Context, memberID uint) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var loans []*domain.Loan
	for _, id := range r.order {
		if loan := r.loans[id]; loan.MemberID == memberID {
			loans = append(loans, &loan)
		}
	}
	return loans, nil
}

// ListByStatus lists loans with the given status in insertion order
func (r *loanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var loans []*domain.Loan
	for _, id := range r.order {
		if loan := r.loans[id]; loan.Status == status {
			loans = append(loans, &loan)
		}
	}
	return loans, nil
}

// ListOpen lists loans that are approved or active, the default dashboard view
func (r *loanRepository) ListOpen(ctx context.Context) ([]*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var loans []*domain.Loan
	for _, id := range r.order {
		if loan := r.loans[id]; loan.Status == domain.LoanActive || loan.Status == domain.LoanApproved {
			loans = append(loans, &loan)
		}
	}
	return loans, nil
}
