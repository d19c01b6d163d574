package services

import (
	"context"
	"time"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// monthlySeriesLen is the number of calendar months each dashboard series
// covers, current month included.
const monthlySeriesLen = 6

// StatsService derives dashboard aggregates from the store. Everything is
// recomputed on each call; there is no cache to invalidate.
type StatsService struct {
	memberRepo      repositories.MemberRepository
	savingRepo      repositories.SavingRepository
	loanRepo        repositories.LoanRepository
	transactionRepo repositories.TransactionRepository
}

// NewStatsService creates a new statistics service
func NewStatsService(
	memberRepo repositories.MemberRepository,
	savingRepo repositories.SavingRepository,
	loanRepo repositories.LoanRepository,
	transactionRepo repositories.TransactionRepository,
) *StatsService {
	return &StatsService{
		memberRepo:      memberRepo,
		savingRepo:      savingRepo,
		loanRepo:        loanRepo,
		transactionRepo: transactionRepo,
	}
}

// MemberStats represents member counts by status
type MemberStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	New      int `json:"new"`
	OnLeave  int `json:"onLeave"`
}

// MonthlyAmount is one calendar-month bucket of a series
type MonthlyAmount struct {
	Month  int     `json:"month"` // 1-12
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// SavingsStats represents the savings dashboard aggregate
type SavingsStats struct {
	TotalSavings   float64         `json:"totalSavings"`
	MonthlySavings []MonthlyAmount `json:"monthlySavings"`
}

// LoanStats represents the loan dashboard aggregate
type LoanStats struct {
	TotalLoans   int             `json:"totalLoans"`
	ActiveLoans  float64         `json:"activeLoans"` // sum of active principals
	PendingLoans int             `json:"pendingLoans"`
	MonthlyLoans []MonthlyAmount `json:"monthlyLoans"`
}

// GetMemberStats counts members by status
func (s *StatsService) GetMemberStats(ctx context.Context) (*MemberStats, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &MemberStats{Total: len(members)}
	for _, member := range members {
		switch member.Status {
		case domain.MemberActive:
			stats.Active++
		case domain.MemberInactive:
			stats.Inactive++
		case domain.MemberNew:
			stats.New++
		case domain.MemberOnLeave:
			stats.OnLeave++
		}
	}
	return stats, nil
}

// GetSavingsStats sums all savings balances and builds the six-month
// deposit series, current month first.
func (s *StatsService) GetSavingsStats(ctx context.Context) (*SavingsStats, error) {
	savings, err := s.savingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.transactionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &SavingsStats{MonthlySavings: monthlyDepositSeries(time.Now(), txs)}
	for _, saving := range savings {
		stats.TotalSavings += saving.TotalSavings
	}
	return stats, nil
}

// GetLoanStats totals the loan book and builds the six-month application
// series, current month first.
func (s *StatsService) GetLoanStats(ctx context.Context) (*LoanStats, error) {
	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &LoanStats{
		TotalLoans:   len(loans),
		MonthlyLoans: monthlyLoanSeries(time.Now(), loans),
	}
	for _, loan := range loans {
		switch loan.Status {
		case domain.LoanActive:
			stats.ActiveLoans += loan.Amount
		case domain.LoanPending:
			stats.PendingLoans++
		}
	}
	return stats, nil
}

// monthBuckets returns the first day of each of the last monthlySeriesLen
// calendar months, most recent first. Anchoring on the first of the month
// keeps the arithmetic stable near month ends.
func monthBuckets(now time.Time) []time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	buckets := make([]time.Time, monthlySeriesLen)
	for i := range buckets {
		buckets[i] = first.AddDate(0, -i, 0)
	}
	return buckets
}

// monthlyDepositSeries sums deposit transaction amounts per calendar month
func monthlyDepositSeries(now time.Time, txs []*domain.Transaction) []MonthlyAmount {
	series := make([]MonthlyAmount, 0, monthlySeriesLen)
	for _, bucket := range monthBuckets(now) {
		entry := MonthlyAmount{Month: int(bucket.Month()), Year: bucket.Year()}
		for _, tx := range txs {
			if tx.Type != domain.TxDeposit {
				continue
			}
			if tx.Date.Year() == entry.Year && int(tx.Date.Month()) == entry.Month {
				entry.Amount += tx.Amount
			}
		}
		series = append(series, entry)
	}
	return series
}

// monthlyLoanSeries sums principal per application month for loans that
// made it onto the book (active or completed)
func monthlyLoanSeries(now time.Time, loans []*domain.Loan) []MonthlyAmount {
	series := make([]MonthlyAmount, 0, monthlySeriesLen)
	for _, bucket := range monthBuckets(now) {
		entry := MonthlyAmount{Month: int(bucket.Month()), Year: bucket.Year()}
		for _, loan := range loans {
			if loan.Status != domain.LoanActive && loan.Status != domain.LoanCompleted {
				continue
			}
			if loan.ApplicationDate.Year() == entry.Year && int(loan.ApplicationDate.Month()) == entry.Month {
				entry.Amount += loan.Amount
			}
		}
		series = append(series, entry)
	}
	return series
}
