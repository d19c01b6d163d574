package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"coopfund/internal/core/domain"
)

func newDividendService(env *ledgerEnv) *DividendService {
	return NewDividendService(env.store.Dividends, env.store.Distributions, env.store.Members, env.store.Savings, env.ledger)
}

func TestCreateDistribution_CompletedPaysOutThroughLedger(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	svc := newDividendService(env)
	ctx := context.Background()

	dividend, err := svc.CreateDividend(ctx, &CreateDividendInput{
		Year: 2025, Month: 6, TotalAmount: 10000,
	})
	if err != nil {
		t.Fatalf("create dividend: %v", err)
	}

	_, err = svc.CreateDistribution(ctx, &CreateDistributionInput{
		DividendID: dividend.ID,
		MemberID:   member.ID,
		Amount:     2500,
		Status:     domain.DistributionCompleted,
	})
	if err != nil {
		t.Fatalf("create distribution: %v", err)
	}

	if bal := env.balance(t, member.ID); bal != 2500 {
		t.Fatalf("balance after dividend payment: expected 2500, got %v", bal)
	}

	txs, _ := env.store.Transactions.List(ctx)
	if len(txs) != 1 || txs[0].Type != domain.TxDividendPayment {
		t.Fatalf("expected one dividend_payment transaction, got %d", len(txs))
	}
}

func TestCreateDistribution_PendingDoesNotPayOut(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	svc := newDividendService(env)
	ctx := context.Background()

	dividend, err := svc.CreateDividend(ctx, &CreateDividendInput{
		Year: 2025, Month: 6, TotalAmount: 10000,
	})
	if err != nil {
		t.Fatalf("create dividend: %v", err)
	}

	_, err = svc.CreateDistribution(ctx, &CreateDistributionInput{
		DividendID: dividend.ID,
		MemberID:   member.ID,
		Amount:     2500,
	})
	if err != nil {
		t.Fatalf("create distribution: %v", err)
	}

	if bal := env.balance(t, member.ID); bal != 0 {
		t.Fatalf("pending distribution must not pay out, balance %v", bal)
	}
}

func TestGenerateDistributions_ProRataBySavings(t *testing.T) {
	env := newLedgerEnv(t)
	alice := env.newMember(t, "EMP-1")
	bob := env.newMember(t, "EMP-2")
	svc := newDividendService(env)
	ctx := context.Background()

	env.record(t, alice.ID, domain.TxDeposit, 3000, domain.TxCompleted)
	env.record(t, bob.ID, domain.TxDeposit, 1000, domain.TxCompleted)

	dividend, err := svc.CreateDividend(ctx, &CreateDividendInput{
		Year: 2025, Month: 12, TotalAmount: 1000,
	})
	if err != nil {
		t.Fatalf("create dividend: %v", err)
	}

	dists, err := svc.GenerateDistributions(ctx, dividend.ID)
	if err != nil {
		t.Fatalf("generate distributions: %v", err)
	}
	if len(dists) != 2 {
		t.Fatalf("expected 2 distributions, got %d", len(dists))
	}

	byMember := map[uint]float64{}
	var total float64
	for _, d := range dists {
		if d.Status != domain.DistributionCompleted {
			t.Fatalf("distribution status: expected completed, got %s", d.Status)
		}
		byMember[d.MemberID] = d.Amount
		total += d.Amount
	}
	if byMember[alice.ID] != 750 || byMember[bob.ID] != 250 {
		t.Fatalf("expected 750/250 split, got %v/%v", byMember[alice.ID], byMember[bob.ID])
	}
	if total != 1000 {
		t.Fatalf("shares must sum to the dividend total, got %v", total)
	}

	// Payout lands on top of the existing balances.
	if bal := env.balance(t, alice.ID); bal != 3750 {
		t.Fatalf("alice balance: expected 3750, got %v", bal)
	}
	if bal := env.balance(t, bob.ID); bal != 1250 {
		t.Fatalf("bob balance: expected 1250, got %v", bal)
	}
}

func TestGenerateDistributions_EqualSplitWhenBookIsEmpty(t *testing.T) {
	env := newLedgerEnv(t)
	env.newMember(t, "EMP-1")
	env.newMember(t, "EMP-2")
	svc := newDividendService(env)
	ctx := context.Background()

	dividend, err := svc.CreateDividend(ctx, &CreateDividendInput{
		Year: 2025, Month: 12, TotalAmount: 500,
	})
	if err != nil {
		t.Fatalf("create dividend: %v", err)
	}

	dists, err := svc.GenerateDistributions(ctx, dividend.ID)
	if err != nil {
		t.Fatalf("generate distributions: %v", err)
	}
	if len(dists) != 2 {
		t.Fatalf("expected 2 distributions, got %d", len(dists))
	}
	for _, d := range dists {
		if d.Amount != 250 {
			t.Fatalf("equal split: expected 250 each, got %v for member %d", d.Amount, d.MemberID)
		}
	}
}

func TestGenerateDistributions_NoActiveMembers(t *testing.T) {
	env := newLedgerEnv(t)
	svc := newDividendService(env)
	ctx := context.Background()

	dividend, err := svc.CreateDividend(ctx, &CreateDividendInput{
		Year: 2025, Month: 12, TotalAmount: 500,
	})
	if err != nil {
		t.Fatalf("create dividend: %v", err)
	}

	_, err = svc.GenerateDistributions(ctx, dividend.ID)
	if !errors.Is(err, domain.ErrNoEligibleMembers) {
		t.Fatalf("expected ErrNoEligibleMembers, got %v", err)
	}
}

func TestGetLatestDividend(t *testing.T) {
	env := newLedgerEnv(t)
	svc := newDividendService(env)
	ctx := context.Background()

	if _, err := svc.GetLatestDividend(ctx); !errors.Is(err, domain.ErrDividendNotFound) {
		t.Fatalf("empty store: expected ErrDividendNotFound, got %v", err)
	}

	for _, month := range []int{3, 6, 9} {
		if _, err := svc.CreateDividend(ctx, &CreateDividendInput{
			Year:             2025,
			Month:            month,
			TotalAmount:      100,
			DistributionDate: time.Date(2025, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		}); err != nil {
			t.Fatalf("create dividend: %v", err)
		}
	}

	latest, err := svc.GetLatestDividend(ctx)
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if latest.Month != 9 {
		t.Fatalf("latest dividend: expected month 9, got %d", latest.Month)
	}
}
