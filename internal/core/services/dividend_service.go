package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"

	"github.com/shopspring/decimal"
)

// DividendService handles dividend periods and per-member distributions.
// A distribution created as completed immediately pays out through the
// ledger as a dividend_payment transaction.
type DividendService struct {
	dividendRepo     repositories.DividendRepository
	distributionRepo repositories.DividendDistributionRepository
	memberRepo       repositories.MemberRepository
	savingRepo       repositories.SavingRepository
	ledger           *LedgerService
}

// NewDividendService creates a new dividend service
func NewDividendService(
	dividendRepo repositories.DividendRepository,
	distributionRepo repositories.DividendDistributionRepository,
	memberRepo repositories.MemberRepository,
	savingRepo repositories.SavingRepository,
	ledger *LedgerService,
) *DividendService {
	return &DividendService{
		dividendRepo:     dividendRepo,
		distributionRepo: distributionRepo,
		memberRepo:       memberRepo,
		savingRepo:       savingRepo,
		ledger:           ledger,
	}
}

// CreateDividendInput represents dividend period input
type CreateDividendInput struct {
	Year             int       `json:"year" validate:"required"`
	Month            int       `json:"month" validate:"required,gte=1,lte=12"`
	TotalAmount      float64   `json:"totalAmount" validate:"required,gt=0"`
	DistributionDate time.Time `json:"distributionDate"`
	Description      string    `json:"description,omitempty"`
}

// CreateDividend stores a new dividend period. Dividends are immutable
// after creation.
func (s *DividendService) CreateDividend(ctx context.Context, input *CreateDividendInput) (*domain.Dividend, error) {
	if input.TotalAmount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if input.Month < 1 || input.Month > 12 {
		return nil, domain.ErrInvalidInput
	}

	distributionDate := input.DistributionDate
	if distributionDate.IsZero() {
		distributionDate = time.Now()
	}

	dividend := &domain.Dividend{
		Year:             input.Year,
		Month:            input.Month,
		TotalAmount:      input.TotalAmount,
		DistributionDate: distributionDate,
	}
	if input.Description != "" {
		dividend.Description = &input.Description
	}

	if err := s.dividendRepo.Create(ctx, dividend); err != nil {
		return nil, err
	}
	return dividend, nil
}

// CreateDistributionInput represents per-member distribution input
type CreateDistributionInput struct {
	DividendID       uint                      `json:"dividendId" validate:"required"`
	MemberID         uint                      `json:"memberId" validate:"required"`
	Amount           float64                   `json:"amount" validate:"required,gt=0"`
	DistributionDate time.Time                 `json:"distributionDate"`
	Status           domain.DistributionStatus `json:"status,omitempty"`
}

// CreateDistribution stores a member's dividend share. A completed share
// cascades into a dividend_payment transaction that credits savings.
func (s *DividendService) CreateDistribution(ctx context.Context, input *CreateDistributionInput) (*domain.DividendDistribution, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	status := input.Status
	if status == "" {
		status = domain.DistributionPending
	}
	if !domain.ValidDistributionStatus(status) {
		return nil, domain.ErrInvalidDistributionStatus
	}
	if _, err := s.dividendRepo.GetByID(ctx, input.DividendID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrDividendNotFound
		}
		return nil, err
	}
	if _, err := s.memberRepo.GetByID(ctx, input.MemberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	distributionDate := input.DistributionDate
	if distributionDate.IsZero() {
		distributionDate = time.Now()
	}

	dist := &domain.DividendDistribution{
		DividendID:       input.DividendID,
		MemberID:         input.MemberID,
		Amount:           input.Amount,
		DistributionDate: distributionDate,
		Status:           status,
	}
	if err := s.distributionRepo.Create(ctx, dist); err != nil {
		return nil, err
	}

	if dist.Status == domain.DistributionCompleted {
		_, err := s.ledger.RecordTransaction(ctx, &RecordTransactionInput{
			MemberID:    dist.MemberID,
			Type:        domain.TxDividendPayment,
			Amount:      dist.Amount,
			Date:        dist.DistributionDate,
			Description: fmt.Sprintf("Dividend payment for dividend #%d", dist.DividendID),
			Status:      domain.TxCompleted,
		})
		if err != nil {
			return nil, err
		}
	}

	return dist, nil
}

// GenerateDistributions splits a dividend's total across active members
// pro-rata by savings balance and pays each share out immediately. Shares
// are computed with decimal arithmetic; the rounding residual lands on the
// last member so the shares always sum to the dividend total.
func (s *DividendService) GenerateDistributions(ctx context.Context, dividendID uint) ([]*domain.DividendDistribution, error) {
	dividend, err := s.dividendRepo.GetByID(ctx, dividendID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrDividendNotFound
		}
		return nil, err
	}

	members, err := s.memberRepo.ListByStatus(ctx, domain.MemberActive)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, domain.ErrNoEligibleMembers
	}

	// Weight each member by savings balance; overdrawn accounts weigh
	// nothing. An all-zero book falls back to an equal split.
	weights := make([]decimal.Decimal, len(members))
	totalWeight := decimal.Zero
	for i, member := range members {
		saving, err := s.savingRepo.GetByMemberID(ctx, member.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrSavingNotInitialized
			}
			return nil, err
		}
		w := decimal.NewFromFloat(saving.TotalSavings)
		if w.IsNegative() {
			w = decimal.Zero
		}
		weights[i] = w
		totalWeight = totalWeight.Add(w)
	}
	if totalWeight.IsZero() {
		equal := decimal.New(1, 0)
		for i := range weights {
			weights[i] = equal
		}
		totalWeight = decimal.NewFromInt(int64(len(members)))
	}

	total := decimal.NewFromFloat(dividend.TotalAmount)
	allocated := decimal.Zero
	dists := make([]*domain.DividendDistribution, 0, len(members))

	for i, member := range members {
		var share decimal.Decimal
		if i == len(members)-1 {
			share = total.Sub(allocated)
		} else {
			share = total.Mul(weights[i]).Div(totalWeight).Round(2)
			allocated = allocated.Add(share)
		}
		if share.IsZero() || share.IsNegative() {
			continue
		}

		dist, err := s.CreateDistribution(ctx, &CreateDistributionInput{
			DividendID:       dividend.ID,
			MemberID:         member.ID,
			Amount:           share.InexactFloat64(),
			DistributionDate: dividend.DistributionDate,
			Status:           domain.DistributionCompleted,
		})
		if err != nil {
			return nil, err
		}
		dists = append(dists, dist)
	}

	return dists, nil
}

// GetDividend gets a dividend by ID
func (s *DividendService) GetDividend(ctx context.Context, id uint) (*domain.Dividend, error) {
	dividend, err := s.dividendRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrDividendNotFound
		}
		return nil, err
	}
	return dividend, nil
}

// ListDividends lists all dividend periods
func (s *DividendService) ListDividends(ctx context.Context) ([]*domain.Dividend, error) {
	return s.dividendRepo.List(ctx)
}

// GetLatestDividend gets the most recently distributed dividend
func (s *DividendService) GetLatestDividend(ctx context.Context) (*domain.Dividend, error) {
	dividend, err := s.dividendRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrDividendNotFound
		}
		return nil, err
	}
	return dividend, nil
}

// ListDistributionsByDividend lists the shares of a dividend
func (s *DividendService) ListDistributionsByDividend(ctx context.Context, dividendID uint) ([]*domain.DividendDistribution, error) {
	return s.distributionRepo.ListByDividendID(ctx, dividendID)
}

// ListDistributionsByMember lists a member's dividend shares
func (s *DividendService) ListDistributionsByMember(ctx context.Context, memberID uint) ([]*domain.DividendDistribution, error) {
	return s.distributionRepo.ListByMemberID(ctx, memberID)
}
