package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"coopfund/internal/adapters/persistence/memory"
	"coopfund/internal/core/domain"
)

type ledgerEnv struct {
	store  *memory.Store
	ledger *LedgerService
	loans  *LoanService
}

func newLedgerEnv(t *testing.T) *ledgerEnv {
	t.Helper()
	store := memory.NewStore()
	ledger := NewLedgerService(store.Members, store.Transactions, store.Savings, store.Loans)
	loans := NewLoanService(store.Loans, store.Members, store.Tasks, ledger)
	return &ledgerEnv{store: store, ledger: ledger, loans: loans}
}

// newMember creates a user, a member and the member's zero savings account.
func (e *ledgerEnv) newMember(t *testing.T, employeeID string) *domain.Member {
	t.Helper()
	ctx := context.Background()

	user := &domain.User{
		Username: "user-" + employeeID,
		Password: "x",
		FullName: "Test User",
		Email:    employeeID + "@example.org",
		Role:     domain.RoleMember,
	}
	if err := e.store.Users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	memberService := NewMemberService(e.store.Members, e.store.Savings, e.store.Users)
	member, err := memberService.Create(ctx, &CreateMemberInput{
		UserID:     user.ID,
		EmployeeID: employeeID,
		Department: "Operations",
		Position:   "Technician",
		Status:     domain.MemberActive,
	})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	return member
}

func (e *ledgerEnv) balance(t *testing.T, memberID uint) float64 {
	t.Helper()
	saving, err := e.store.Savings.GetByMemberID(context.Background(), memberID)
	if err != nil {
		t.Fatalf("get saving: %v", err)
	}
	return saving.TotalSavings
}

func (e *ledgerEnv) record(t *testing.T, memberID uint, txType domain.TransactionType, amount float64, status domain.TransactionStatus) *domain.Transaction {
	t.Helper()
	tx, err := e.ledger.RecordTransaction(context.Background(), &RecordTransactionInput{
		MemberID: memberID,
		Type:     txType,
		Amount:   amount,
		Status:   status,
	})
	if err != nil {
		t.Fatalf("record %s: %v", txType, err)
	}
	return tx
}

func TestRecordTransaction_DepositCreditsSavings(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")

	env.record(t, member.ID, domain.TxDeposit, 100000, domain.TxCompleted)

	if got := env.balance(t, member.ID); got != 100000 {
		t.Fatalf("balance after deposit: expected 100000, got %v", got)
	}
}

func TestRecordTransaction_WithdrawalDebitsSavings(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")

	env.record(t, member.ID, domain.TxDeposit, 100000, domain.TxCompleted)
	env.record(t, member.ID, domain.TxWithdrawal, 30000, domain.TxCompleted)

	if got := env.balance(t, member.ID); got != 70000 {
		t.Fatalf("balance after withdrawal: expected 70000, got %v", got)
	}
}

func TestRecordTransaction_WithdrawalMayOverdraw(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")

	env.record(t, member.ID, domain.TxDeposit, 1000, domain.TxCompleted)
	env.record(t, member.ID, domain.TxWithdrawal, 2500, domain.TxCompleted)

	if got := env.balance(t, member.ID); got != -1500 {
		t.Fatalf("overdrawn balance: expected -1500, got %v", got)
	}
}

func TestRecordTransaction_PendingDepositLeavesSavingsUntouched(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")

	env.record(t, member.ID, domain.TxDeposit, 5000, domain.TxPending)

	if got := env.balance(t, member.ID); got != 0 {
		t.Fatalf("balance after pending deposit: expected 0, got %v", got)
	}
}

func TestRecordTransaction_DefaultsToPending(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")

	tx := env.record(t, member.ID, domain.TxDeposit, 5000, "")
	if tx.Status != domain.TxPending {
		t.Fatalf("default status: expected pending, got %s", tx.Status)
	}
}

func TestRecordTransaction_RepaymentCompletesLoan(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	loan := &domain.Loan{
		MemberID:        member.ID,
		Amount:          1050000,
		InterestRate:    5,
		Term:            36,
		Purpose:         "House",
		ApplicationDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:          domain.LoanActive,
	}
	if err := env.store.Loans.Create(ctx, loan); err != nil {
		t.Fatalf("create loan: %v", err)
	}

	env.record(t, member.ID, domain.TxLoanRepayment, 900000, domain.TxCompleted)

	got, err := env.store.Loans.GetByID(ctx, loan.ID)
	if err != nil {
		t.Fatalf("get loan: %v", err)
	}
	if got.TotalRepaid != 900000 {
		t.Fatalf("totalRepaid: expected 900000, got %v", got.TotalRepaid)
	}
	if got.Status != domain.LoanActive {
		t.Fatalf("status after partial repayment: expected active, got %s", got.Status)
	}

	env.record(t, member.ID, domain.TxLoanRepayment, 150000, domain.TxCompleted)

	got, err = env.store.Loans.GetByID(ctx, loan.ID)
	if err != nil {
		t.Fatalf("get loan: %v", err)
	}
	if got.TotalRepaid != 1050000 {
		t.Fatalf("totalRepaid: expected 1050000, got %v", got.TotalRepaid)
	}
	if got.Status != domain.LoanCompleted {
		t.Fatalf("status after full repayment: expected completed, got %s", got.Status)
	}

	// Repayments also credit savings.
	if bal := env.balance(t, member.ID); bal != 1050000 {
		t.Fatalf("balance after repayments: expected 1050000, got %v", bal)
	}
}

func TestRecordTransaction_RepaymentTargetsOldestActiveLoan(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	older := &domain.Loan{
		MemberID:        member.ID,
		Amount:          50000,
		Term:            12,
		Purpose:         "Older",
		ApplicationDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:          domain.LoanActive,
	}
	newer := &domain.Loan{
		MemberID:        member.ID,
		Amount:          80000,
		Term:            12,
		Purpose:         "Newer",
		ApplicationDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:          domain.LoanActive,
	}
	pending := &domain.Loan{
		MemberID:        member.ID,
		Amount:          10000,
		Term:            12,
		Purpose:         "Pending",
		ApplicationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:          domain.LoanPending,
	}
	for _, l := range []*domain.Loan{newer, older, pending} {
		if err := env.store.Loans.Create(ctx, l); err != nil {
			t.Fatalf("create loan: %v", err)
		}
	}

	env.record(t, member.ID, domain.TxLoanRepayment, 5000, domain.TxCompleted)

	gotOlder, _ := env.store.Loans.GetByID(ctx, older.ID)
	gotNewer, _ := env.store.Loans.GetByID(ctx, newer.ID)
	gotPending, _ := env.store.Loans.GetByID(ctx, pending.ID)

	if gotOlder.TotalRepaid != 5000 {
		t.Fatalf("oldest active loan: expected totalRepaid 5000, got %v", gotOlder.TotalRepaid)
	}
	if gotNewer.TotalRepaid != 0 || gotPending.TotalRepaid != 0 {
		t.Fatalf("only the oldest active loan should be touched, got newer=%v pending=%v",
			gotNewer.TotalRepaid, gotPending.TotalRepaid)
	}
}

func TestRecordTransaction_RepaymentTieBreaksOnLowerID(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	sameDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	first := &domain.Loan{MemberID: member.ID, Amount: 10000, Term: 12, Purpose: "A", ApplicationDate: sameDate, Status: domain.LoanActive}
	second := &domain.Loan{MemberID: member.ID, Amount: 10000, Term: 12, Purpose: "B", ApplicationDate: sameDate, Status: domain.LoanActive}
	for _, l := range []*domain.Loan{first, second} {
		if err := env.store.Loans.Create(ctx, l); err != nil {
			t.Fatalf("create loan: %v", err)
		}
	}

	env.record(t, member.ID, domain.TxLoanRepayment, 1000, domain.TxCompleted)

	gotFirst, _ := env.store.Loans.GetByID(ctx, first.ID)
	gotSecond, _ := env.store.Loans.GetByID(ctx, second.ID)
	if gotFirst.TotalRepaid != 1000 || gotSecond.TotalRepaid != 0 {
		t.Fatalf("tie should resolve to lower ID, got first=%v second=%v",
			gotFirst.TotalRepaid, gotSecond.TotalRepaid)
	}
}

func TestRecordTransaction_RepaymentWithoutActiveLoanStillCreditsSavings(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")

	env.record(t, member.ID, domain.TxLoanRepayment, 3000, domain.TxCompleted)

	if got := env.balance(t, member.ID); got != 3000 {
		t.Fatalf("balance: expected 3000, got %v", got)
	}
}

func TestRecordTransaction_MemberIsolation(t *testing.T) {
	env := newLedgerEnv(t)
	alice := env.newMember(t, "EMP-1")
	bob := env.newMember(t, "EMP-2")

	env.record(t, alice.ID, domain.TxDeposit, 4000, domain.TxCompleted)

	if got := env.balance(t, bob.ID); got != 0 {
		t.Fatalf("other member's balance: expected 0, got %v", got)
	}
}

func TestRecordTransaction_Validation(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	_, err := env.ledger.RecordTransaction(ctx, &RecordTransactionInput{
		MemberID: member.ID, Type: domain.TxDeposit, Amount: 0,
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("zero amount: expected ErrInvalidAmount, got %v", err)
	}

	_, err = env.ledger.RecordTransaction(ctx, &RecordTransactionInput{
		MemberID: member.ID, Type: "transfer", Amount: 100,
	})
	if !errors.Is(err, domain.ErrInvalidTransactionType) {
		t.Fatalf("bad type: expected ErrInvalidTransactionType, got %v", err)
	}

	_, err = env.ledger.RecordTransaction(ctx, &RecordTransactionInput{
		MemberID: 999, Type: domain.TxDeposit, Amount: 100,
	})
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("unknown member: expected ErrMemberNotFound, got %v", err)
	}

	// Nothing should have been stored by the rejected inputs.
	txs, err := env.store.Transactions.List(ctx)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("rejected inputs must not store transactions, got %d", len(txs))
	}
}

func TestListRecent_NewestFirstWithLimit(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := env.ledger.RecordTransaction(ctx, &RecordTransactionInput{
			MemberID: member.ID,
			Type:     domain.TxDeposit,
			Amount:   float64(100 * (i + 1)),
			Date:     base.AddDate(0, 0, i),
			Status:   domain.TxCompleted,
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	txs, err := env.ledger.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if txs[0].Amount != 500 || txs[1].Amount != 400 || txs[2].Amount != 300 {
		t.Fatalf("expected newest first (500, 400, 300), got (%v, %v, %v)",
			txs[0].Amount, txs[1].Amount, txs[2].Amount)
	}
}
