package services

import (
	"context"
	"testing"
	"time"

	"coopfund/internal/core/domain"
)

func TestGetMemberStats_CountsByStatus(t *testing.T) {
	env := newLedgerEnv(t)
	ctx := context.Background()

	statuses := []domain.MemberStatus{
		domain.MemberActive, domain.MemberActive,
		domain.MemberInactive,
		domain.MemberNew,
		domain.MemberOnLeave,
	}
	for i, status := range statuses {
		member := env.newMember(t, "EMP-"+string(rune('A'+i)))
		if status != domain.MemberActive {
			s := status
			if _, err := env.store.Members.Update(ctx, member.ID, &domain.MemberPatch{Status: &s}); err != nil {
				t.Fatalf("update member: %v", err)
			}
		}
	}

	stats := NewStatsService(env.store.Members, env.store.Savings, env.store.Loans, env.store.Transactions)
	got, err := stats.GetMemberStats(ctx)
	if err != nil {
		t.Fatalf("member stats: %v", err)
	}

	if got.Total != 5 || got.Active != 2 || got.Inactive != 1 || got.New != 1 || got.OnLeave != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
}

func TestMonthlyDepositSeries_BucketsByCalendarMonth(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	txs := []*domain.Transaction{
		{Type: domain.TxDeposit, Amount: 100, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Type: domain.TxDeposit, Amount: 50, Date: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)},
		{Type: domain.TxDeposit, Amount: 200, Date: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{Type: domain.TxDeposit, Amount: 400, Date: time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)},
		// Outside the window.
		{Type: domain.TxDeposit, Amount: 999, Date: time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)},
		// Not a deposit.
		{Type: domain.TxWithdrawal, Amount: 70, Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Type: domain.TxLoanRepayment, Amount: 80, Date: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)},
	}

	series := monthlyDepositSeries(now, txs)
	if len(series) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(series))
	}

	// Index 0 is the current month; older months follow.
	wantMonths := []struct {
		month, year int
		amount      float64
	}{
		{3, 2025, 150},
		{2, 2025, 200},
		{1, 2025, 0},
		{12, 2024, 0},
		{11, 2024, 0},
		{10, 2024, 400},
	}
	for i, want := range wantMonths {
		got := series[i]
		if got.Month != want.month || got.Year != want.year || got.Amount != want.amount {
			t.Fatalf("bucket %d: expected %d/%d=%v, got %d/%d=%v",
				i, want.month, want.year, want.amount, got.Month, got.Year, got.Amount)
		}
	}
}

func TestMonthlyDepositSeries_StableAtMonthEnd(t *testing.T) {
	// March 31 minus one calendar month must land in February, not skip it.
	now := time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)
	series := monthlyDepositSeries(now, nil)

	if series[1].Month != 2 || series[1].Year != 2025 {
		t.Fatalf("bucket 1: expected 2/2025, got %d/%d", series[1].Month, series[1].Year)
	}
}

func TestMonthlyLoanSeries_OnlyCountsBookedLoans(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	loans := []*domain.Loan{
		{Amount: 1000, Status: domain.LoanActive, ApplicationDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Amount: 2000, Status: domain.LoanCompleted, ApplicationDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{Amount: 4000, Status: domain.LoanPending, ApplicationDate: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
		{Amount: 8000, Status: domain.LoanRejected, ApplicationDate: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
		{Amount: 500, Status: domain.LoanActive, ApplicationDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
	}

	series := monthlyLoanSeries(now, loans)
	if series[0].Amount != 3000 {
		t.Fatalf("current month: expected 3000, got %v", series[0].Amount)
	}
	if series[2].Amount != 500 {
		t.Fatalf("two months back: expected 500, got %v", series[2].Amount)
	}
}

func TestGetLoanStats_Aggregates(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	loans := []*domain.Loan{
		{MemberID: member.ID, Amount: 1000, Term: 12, Purpose: "a", ApplicationDate: time.Now(), Status: domain.LoanActive},
		{MemberID: member.ID, Amount: 2500, Term: 12, Purpose: "b", ApplicationDate: time.Now(), Status: domain.LoanActive},
		{MemberID: member.ID, Amount: 9000, Term: 12, Purpose: "c", ApplicationDate: time.Now(), Status: domain.LoanPending},
		{MemberID: member.ID, Amount: 700, Term: 12, Purpose: "d", ApplicationDate: time.Now(), Status: domain.LoanCompleted},
	}
	for _, l := range loans {
		if err := env.store.Loans.Create(ctx, l); err != nil {
			t.Fatalf("create loan: %v", err)
		}
	}

	stats := NewStatsService(env.store.Members, env.store.Savings, env.store.Loans, env.store.Transactions)
	got, err := stats.GetLoanStats(ctx)
	if err != nil {
		t.Fatalf("loan stats: %v", err)
	}

	if got.TotalLoans != 4 {
		t.Fatalf("total loans: expected 4, got %d", got.TotalLoans)
	}
	if got.ActiveLoans != 3500 {
		t.Fatalf("active principal: expected 3500, got %v", got.ActiveLoans)
	}
	if got.PendingLoans != 1 {
		t.Fatalf("pending loans: expected 1, got %d", got.PendingLoans)
	}
	if len(got.MonthlyLoans) != 6 {
		t.Fatalf("expected 6 monthly buckets, got %d", len(got.MonthlyLoans))
	}
}

func TestGetSavingsStats_TotalsAllAccounts(t *testing.T) {
	env := newLedgerEnv(t)
	alice := env.newMember(t, "EMP-1")
	bob := env.newMember(t, "EMP-2")
	ctx := context.Background()

	env.record(t, alice.ID, domain.TxDeposit, 1200, domain.TxCompleted)
	env.record(t, bob.ID, domain.TxDeposit, 800, domain.TxCompleted)

	stats := NewStatsService(env.store.Members, env.store.Savings, env.store.Loans, env.store.Transactions)
	got, err := stats.GetSavingsStats(ctx)
	if err != nil {
		t.Fatalf("savings stats: %v", err)
	}

	if got.TotalSavings != 2000 {
		t.Fatalf("total savings: expected 2000, got %v", got.TotalSavings)
	}
	if len(got.MonthlySavings) != 6 {
		t.Fatalf("expected 6 monthly buckets, got %d", len(got.MonthlySavings))
	}
	if got.MonthlySavings[0].Amount != 2000 {
		t.Fatalf("current month deposits: expected 2000, got %v", got.MonthlySavings[0].Amount)
	}
}
