package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
	"coopfund/internal/pkg/annuity"
)

// loanApprovalDueDays is how long the approval task gets before falling due.
const loanApprovalDueDays = 3

// LoanService handles loan applications and their cascade effects: a pending
// application opens an approval task, an approved or active loan disburses
// its principal through the ledger.
type LoanService struct {
	loanRepo   repositories.LoanRepository
	memberRepo repositories.MemberRepository
	taskRepo   repositories.TaskRepository
	ledger     *LedgerService
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	memberRepo repositories.MemberRepository,
	taskRepo repositories.TaskRepository,
	ledger *LedgerService,
) *LoanService {
	return &LoanService{
		loanRepo:   loanRepo,
		memberRepo: memberRepo,
		taskRepo:   taskRepo,
		ledger:     ledger,
	}
}

// CreateLoanInput represents loan application input
type CreateLoanInput struct {
	MemberID        uint              `json:"memberId" validate:"required"`
	Amount          float64           `json:"amount" validate:"required,gt=0"`
	InterestRate    float64           `json:"interestRate" validate:"gte=0"`
	Term            int               `json:"term" validate:"required,gte=1"`
	Purpose         string            `json:"purpose" validate:"required"`
	ApplicationDate time.Time         `json:"applicationDate"`
	Status          domain.LoanStatus `json:"status,omitempty"`
	MonthlyPayment  float64           `json:"monthlyPayment,omitempty"`
	NextPaymentDue  *time.Time        `json:"nextPaymentDue,omitempty"`
}

// Create stores a loan application and runs its cascade
func (s *LoanService) Create(ctx context.Context, input *CreateLoanInput) (*domain.Loan, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.InterestRate < 0 {
		return nil, domain.ErrInvalidInterest
	}
	if input.Term < 1 {
		return nil, domain.ErrInvalidLoanTerm
	}
	status := input.Status
	if status == "" {
		status = domain.LoanPending
	}
	if !domain.ValidLoanStatus(status) {
		return nil, domain.ErrInvalidLoanStatus
	}
	if _, err := s.memberRepo.GetByID(ctx, input.MemberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	applicationDate := input.ApplicationDate
	if applicationDate.IsZero() {
		applicationDate = time.Now()
	}

	monthlyPayment := input.MonthlyPayment
	if monthlyPayment == 0 {
		monthlyPayment = annuity.MonthlyPayment(input.Amount, input.InterestRate, input.Term)
	}

	loan := &domain.Loan{
		MemberID:        input.MemberID,
		Amount:          input.Amount,
		InterestRate:    input.InterestRate,
		Term:            input.Term,
		Purpose:         input.Purpose,
		ApplicationDate: applicationDate,
		Status:          status,
		NextPaymentDue:  input.NextPaymentDue,
		MonthlyPayment:  monthlyPayment,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	// A pending application is the only automated task trigger in the
	// system.
	if loan.Status == domain.LoanPending {
		if err := s.createApprovalTask(ctx, loan); err != nil {
			return nil, err
		}
	}

	// A loan created already approved or active pays out immediately.
	if loan.Status == domain.LoanApproved || loan.Status == domain.LoanActive {
		if err := s.disburse(ctx, loan); err != nil {
			return nil, err
		}
	}

	return loan, nil
}

// UpdateLoanInput represents a partial loan update
type UpdateLoanInput struct {
	Status         *domain.LoanStatus `json:"status,omitempty"`
	ApprovalDate   *time.Time         `json:"approvalDate,omitempty"`
	NextPaymentDue *time.Time         `json:"nextPaymentDue,omitempty"`
	MonthlyPayment *float64           `json:"monthlyPayment,omitempty"`
}

// Update applies a partial update to a loan. Approving a pending loan
// disburses its principal; every other status transition is bookkeeping
// only.
func (s *LoanService) Update(ctx context.Context, id uint, input *UpdateLoanInput) (*domain.Loan, error) {
	if input.Status != nil && !domain.ValidLoanStatus(*input.Status) {
		return nil, domain.ErrInvalidLoanStatus
	}

	existing, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	patch := &domain.LoanPatch{
		Status:         input.Status,
		ApprovalDate:   input.ApprovalDate,
		NextPaymentDue: input.NextPaymentDue,
		MonthlyPayment: input.MonthlyPayment,
	}

	approving := existing.Status == domain.LoanPending &&
		input.Status != nil && *input.Status == domain.LoanApproved
	if approving && patch.ApprovalDate == nil {
		now := time.Now()
		patch.ApprovalDate = &now
	}

	loan, err := s.loanRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if approving {
		if err := s.disburse(ctx, loan); err != nil {
			return nil, err
		}
	}

	return loan, nil
}

// createApprovalTask opens a loan_approval task due in three days
func (s *LoanService) createApprovalTask(ctx context.Context, loan *domain.Loan) error {
	now := time.Now()
	due := now.AddDate(0, 0, loanApprovalDueDays)
	description := fmt.Sprintf("New loan application from member #%d for %.2f", loan.MemberID, loan.Amount)

	task := &domain.Task{
		Title:       "Loan Approval Request",
		Description: &description,
		Type:        domain.TaskTypeLoanApproval,
		Status:      domain.TaskPending,
		CreatedAt:   now,
		DueDate:     &due,
	}
	return s.taskRepo.Create(ctx, task)
}

// disburse records the principal payout through the ledger. Disbursements
// are completed immediately and do not touch the savings balance.
func (s *LoanService) disburse(ctx context.Context, loan *domain.Loan) error {
	_, err := s.ledger.RecordTransaction(ctx, &RecordTransactionInput{
		MemberID:    loan.MemberID,
		Type:        domain.TxLoanDisbursement,
		Amount:      loan.Amount,
		Date:        time.Now(),
		Description: fmt.Sprintf("Loan disbursement for loan #%d", loan.ID),
		Status:      domain.TxCompleted,
	})
	return err
}

// GetByID gets a loan by ID
func (s *LoanService) GetByID(ctx context.Context, id uint) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// ListByMember lists a member's loans
func (s *LoanService) ListByMember(ctx context.Context, memberID uint) ([]*domain.Loan, error) {
	return s.loanRepo.ListByMemberID(ctx, memberID)
}

// ListByStatus lists loans with the given status
func (s *LoanService) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error) {
	if !domain.ValidLoanStatus(status) {
		return nil, domain.ErrInvalidLoanStatus
	}
	return s.loanRepo.ListByStatus(ctx, status)
}

// ListOpen lists approved and active loans, the default listing
func (s *LoanService) ListOpen(ctx context.Context) ([]*domain.Loan, error) {
	return s.loanRepo.ListOpen(ctx)
}
