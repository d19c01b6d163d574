package services

import (
	"context"
	"errors"
	"log"
	"time"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// LedgerService records transactions and runs the ledger cascade: a stored
// transaction may move the member's savings balance and allocate a repayment
// to the member's oldest active loan. Steps run in a fixed order — savings
// first, then loan allocation — and are best-effort: a failed step never
// rolls back the already-stored transaction.
type LedgerService struct {
	memberRepo      repositories.MemberRepository
	transactionRepo repositories.TransactionRepository
	savingRepo      repositories.SavingRepository
	loanRepo        repositories.LoanRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	memberRepo repositories.MemberRepository,
	transactionRepo repositories.TransactionRepository,
	savingRepo repositories.SavingRepository,
	loanRepo repositories.LoanRepository,
) *LedgerService {
	return &LedgerService{
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
		savingRepo:      savingRepo,
		loanRepo:        loanRepo,
	}
}

// RecordTransactionInput represents transaction recording input
type RecordTransactionInput struct {
	MemberID    uint                     `json:"memberId" validate:"required"`
	Type        domain.TransactionType   `json:"type" validate:"required"`
	Amount      float64                  `json:"amount" validate:"required,gt=0"`
	Date        time.Time                `json:"date"`
	Description string                   `json:"description,omitempty"`
	Status      domain.TransactionStatus `json:"status,omitempty"`
}

// RecordTransaction stores a transaction and runs the cascade. Validation
// happens before any mutation; once the transaction is stored, cascade
// failures are returned but the record remains.
func (s *LedgerService) RecordTransaction(ctx context.Context, input *RecordTransactionInput) (*domain.Transaction, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.ValidTransactionType(input.Type) {
		return nil, domain.ErrInvalidTransactionType
	}
	status := input.Status
	if status == "" {
		status = domain.TxPending
	}
	if !domain.ValidTransactionStatus(status) {
		return nil, domain.ErrInvalidTransactionStatus
	}
	if _, err := s.memberRepo.GetByID(ctx, input.MemberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx := &domain.Transaction{
		MemberID: input.MemberID,
		Type:     input.Type,
		Amount:   input.Amount,
		Date:     date,
		Status:   status,
	}
	if input.Description != "" {
		tx.Description = &input.Description
	}

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	// Cascade step 1: savings balance. Must complete before the loan
	// lookup so the balance a repayment leaves behind is already visible.
	if tx.Status == domain.TxCompleted && tx.Type.AffectsSavings() {
		if err := s.applySavingsDelta(ctx, tx); err != nil {
			return nil, err
		}
	}

	// Cascade step 2: repayment allocation.
	if tx.Type == domain.TxLoanRepayment {
		if err := s.allocateRepayment(ctx, tx); err != nil {
			return nil, err
		}
	}

	return tx, nil
}

// applySavingsDelta moves the member's savings balance by the signed effect
// of the transaction. Withdrawals are not floored at zero: a withdrawal
// larger than the balance leaves it negative, matching cooperative policy of
// settling overdrafts administratively rather than rejecting them.
func (s *LedgerService) applySavingsDelta(ctx context.Context, tx *domain.Transaction) error {
	saving, err := s.savingRepo.GetByMemberID(ctx, tx.MemberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Every member gets a savings account at creation, so this
			// is a broken invariant, not a caller mistake.
			log.Printf("invariant violation: member %d has no savings account (transaction %d)", tx.MemberID, tx.ID)
			return domain.ErrSavingNotInitialized
		}
		return err
	}

	newTotal := saving.TotalSavings + tx.Type.SavingsDelta(tx.Amount)
	now := time.Now()
	_, err = s.savingRepo.Update(ctx, saving.ID, &domain.SavingPatch{
		TotalSavings: &newTotal,
		LastUpdate:   &now,
	})
	return err
}

// allocateRepayment adds the repayment to the member's oldest active loan.
// Exactly one loan is updated per repayment; repayments are never split.
// Ties on application date resolve to the lower loan ID.
func (s *LedgerService) allocateRepayment(ctx context.Context, tx *domain.Transaction) error {
	loans, err := s.loanRepo.ListByMemberID(ctx, tx.MemberID)
	if err != nil {
		return err
	}

	var oldest *domain.Loan
	for _, loan := range loans {
		if loan.Status != domain.LoanActive {
			continue
		}
		if oldest == nil ||
			loan.ApplicationDate.Before(oldest.ApplicationDate) ||
			(loan.ApplicationDate.Equal(oldest.ApplicationDate) && loan.ID < oldest.ID) {
			oldest = loan
		}
	}
	if oldest == nil {
		// No active loan: the repayment still credits savings above.
		return nil
	}

	newTotal := oldest.TotalRepaid + tx.Amount
	patch := &domain.LoanPatch{TotalRepaid: &newTotal}

	// totalRepaid is not capped at the principal; crossing it completes
	// the loan.
	if newTotal >= oldest.Amount {
		completed := domain.LoanCompleted
		patch.Status = &completed
	}

	_, err = s.loanRepo.Update(ctx, oldest.ID, patch)
	return err
}

// GetTransaction gets a transaction by ID
func (s *LedgerService) GetTransaction(ctx context.Context, id uint) (*domain.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ListByMember lists a member's transactions
func (s *LedgerService) ListByMember(ctx context.Context, memberID uint) ([]*domain.Transaction, error) {
	return s.transactionRepo.ListByMemberID(ctx, memberID)
}

// ListRecent lists the most recent transactions, newest first
func (s *LedgerService) ListRecent(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.transactionRepo.ListRecent(ctx, limit)
}
