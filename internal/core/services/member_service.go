package services

import (
	"context"
	"errors"
	"time"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// MemberService handles member lifecycle. A member is always created
// together with a zero-balance savings account; the ledger relies on that
// pairing.
type MemberService struct {
	memberRepo repositories.MemberRepository
	savingRepo repositories.SavingRepository
	userRepo   repositories.UserRepository
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo repositories.MemberRepository,
	savingRepo repositories.SavingRepository,
	userRepo repositories.UserRepository,
) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		savingRepo: savingRepo,
		userRepo:   userRepo,
	}
}

// CreateMemberInput represents member registration input
type CreateMemberInput struct {
	UserID              uint                `json:"userId" validate:"required"`
	EmployeeID          string              `json:"employeeId" validate:"required"`
	Department          string              `json:"department" validate:"required"`
	Position            string              `json:"position" validate:"required"`
	JoinDate            time.Time           `json:"joinDate"`
	PhoneNumber         string              `json:"phoneNumber,omitempty"`
	Address             string              `json:"address,omitempty"`
	Status              domain.MemberStatus `json:"status,omitempty"`
	MonthlyContribution float64             `json:"monthlyContribution" validate:"gte=0"`
}

// Create stores a new member and initializes their savings account
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*domain.Member, error) {
	status := input.Status
	if status == "" {
		status = domain.MemberNew
	}
	if !domain.ValidMemberStatus(status) {
		return nil, domain.ErrInvalidMemberStatus
	}
	if input.MonthlyContribution < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.memberRepo.GetByEmployeeID(ctx, input.EmployeeID); err == nil {
		return nil, domain.ErrEmployeeIDAlreadyUsed
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	joinDate := input.JoinDate
	if joinDate.IsZero() {
		joinDate = time.Now()
	}

	member := &domain.Member{
		UserID:              input.UserID,
		EmployeeID:          input.EmployeeID,
		Department:          input.Department,
		Position:            input.Position,
		JoinDate:            joinDate,
		Status:              status,
		MonthlyContribution: input.MonthlyContribution,
	}
	if input.PhoneNumber != "" {
		member.PhoneNumber = &input.PhoneNumber
	}
	if input.Address != "" {
		member.Address = &input.Address
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	// Every member owns exactly one savings account, opened at zero.
	saving := &domain.Saving{
		MemberID:     member.ID,
		TotalSavings: 0,
		LastUpdate:   time.Now(),
	}
	if err := s.savingRepo.Create(ctx, saving); err != nil {
		return nil, err
	}

	return member, nil
}

// UpdateMemberInput represents a partial member update
type UpdateMemberInput struct {
	Department          *string              `json:"department,omitempty"`
	Position            *string              `json:"position,omitempty"`
	JoinDate            *time.Time           `json:"joinDate,omitempty"`
	PhoneNumber         *string              `json:"phoneNumber,omitempty"`
	Address             *string              `json:"address,omitempty"`
	Status              *domain.MemberStatus `json:"status,omitempty"`
	MonthlyContribution *float64             `json:"monthlyContribution,omitempty"`
}

// Update applies a partial update to a member
func (s *MemberService) Update(ctx context.Context, id uint, input *UpdateMemberInput) (*domain.Member, error) {
	if input.Status != nil && !domain.ValidMemberStatus(*input.Status) {
		return nil, domain.ErrInvalidMemberStatus
	}
	if input.MonthlyContribution != nil && *input.MonthlyContribution < 0 {
		return nil, domain.ErrInvalidAmount
	}

	member, err := s.memberRepo.Update(ctx, id, &domain.MemberPatch{
		Department:          input.Department,
		Position:            input.Position,
		JoinDate:            input.JoinDate,
		PhoneNumber:         input.PhoneNumber,
		Address:             input.Address,
		Status:              input.Status,
		MonthlyContribution: input.MonthlyContribution,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// GetByID gets a member by ID
func (s *MemberService) GetByID(ctx context.Context, id uint) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// GetByUserID gets the member linked to a user account
func (s *MemberService) GetByUserID(ctx context.Context, userID uint) (*domain.Member, error) {
	member, err := s.memberRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// List lists all members
func (s *MemberService) List(ctx context.Context) ([]*domain.Member, error) {
	return s.memberRepo.List(ctx)
}

// ListByStatus lists members with the given status
func (s *MemberService) ListByStatus(ctx context.Context, status domain.MemberStatus) ([]*domain.Member, error) {
	if !domain.ValidMemberStatus(status) {
		return nil, domain.ErrInvalidMemberStatus
	}
	return s.memberRepo.ListByStatus(ctx, status)
}

// GetSaving gets a member's savings account
func (s *MemberService) GetSaving(ctx context.Context, memberID uint) (*domain.Saving, error) {
	saving, err := s.savingRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSavingNotFound
		}
		return nil, err
	}
	return saving, nil
}

// ListSavings lists all savings accounts
func (s *MemberService) ListSavings(ctx context.Context) ([]*domain.Saving, error) {
	return s.savingRepo.List(ctx)
}
