package services

import (
	"context"
	"testing"
	"time"

	"coopfund/internal/core/domain"
)

// newOverdueLoan books an active loan whose next payment fell due before now.
func newOverdueLoan(t *testing.T, env *ledgerEnv, memberID uint, due time.Time) *domain.Loan {
	t.Helper()
	loan, err := env.loans.Create(context.Background(), &CreateLoanInput{
		MemberID:       memberID,
		Amount:         24000,
		InterestRate:   4.5,
		Term:           24,
		Purpose:        "Appliances",
		Status:         domain.LoanActive,
		NextPaymentDue: &due,
	})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	return loan
}

func TestOpenOverduePaymentTasks_OpensReminderForOverdueLoan(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	newOverdueLoan(t, env, member.ID, now.AddDate(0, 0, -5))

	svc := NewReminderService(env.store.Loans, env.store.Tasks)
	opened, err := svc.OpenOverduePaymentTasks(ctx, now)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if opened != 1 {
		t.Fatalf("expected 1 task opened, got %d", opened)
	}

	tasks, err := env.store.Tasks.ListByType(ctx, domain.TaskTypePaymentReminder)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 reminder task, got %d", len(tasks))
	}
	if tasks[0].Status != domain.TaskPending {
		t.Fatalf("task status: expected pending, got %s", tasks[0].Status)
	}
	if tasks[0].DueDate == nil || !tasks[0].DueDate.Equal(now.AddDate(0, 0, 3)) {
		t.Fatalf("task due date: expected %v, got %v", now.AddDate(0, 0, 3), tasks[0].DueDate)
	}
}

func TestOpenOverduePaymentTasks_RescanDoesNotDuplicate(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	newOverdueLoan(t, env, member.ID, now.AddDate(0, 0, -5))

	svc := NewReminderService(env.store.Loans, env.store.Tasks)
	if _, err := svc.OpenOverduePaymentTasks(ctx, now); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	opened, err := svc.OpenOverduePaymentTasks(ctx, now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if opened != 0 {
		t.Fatalf("rescan must not duplicate, opened %d", opened)
	}

	tasks, _ := env.store.Tasks.ListByType(ctx, domain.TaskTypePaymentReminder)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 reminder task after rescan, got %d", len(tasks))
	}
}

func TestOpenOverduePaymentTasks_ReopensAfterTaskCompleted(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	newOverdueLoan(t, env, member.ID, now.AddDate(0, 0, -5))

	svc := NewReminderService(env.store.Loans, env.store.Tasks)
	if _, err := svc.OpenOverduePaymentTasks(ctx, now); err != nil {
		t.Fatalf("first scan: %v", err)
	}

	tasks, _ := env.store.Tasks.ListByType(ctx, domain.TaskTypePaymentReminder)
	completed := domain.TaskCompleted
	if _, err := env.store.Tasks.Update(ctx, tasks[0].ID, &domain.TaskPatch{Status: &completed}); err != nil {
		t.Fatalf("complete task: %v", err)
	}

	// Still overdue next month: a fresh reminder is allowed.
	opened, err := svc.OpenOverduePaymentTasks(ctx, now.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if opened != 1 {
		t.Fatalf("expected a fresh reminder after completion, got %d", opened)
	}
}

func TestOpenOverduePaymentTasks_SkipsLoansNotDue(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	// Due in the future.
	newOverdueLoan(t, env, member.ID, now.AddDate(0, 0, 10))

	// No payment schedule at all.
	if _, err := env.loans.Create(ctx, &CreateLoanInput{
		MemberID:     member.ID,
		Amount:       10000,
		InterestRate: 4.5,
		Term:         12,
		Purpose:      "Tuition",
		Status:       domain.LoanActive,
	}); err != nil {
		t.Fatalf("create loan: %v", err)
	}

	// Pending application, overdue date notwithstanding.
	past := now.AddDate(0, 0, -5)
	if _, err := env.loans.Create(ctx, &CreateLoanInput{
		MemberID:       member.ID,
		Amount:         10000,
		InterestRate:   4.5,
		Term:           12,
		Purpose:        "Travel",
		NextPaymentDue: &past,
	}); err != nil {
		t.Fatalf("create loan: %v", err)
	}

	svc := NewReminderService(env.store.Loans, env.store.Tasks)
	opened, err := svc.OpenOverduePaymentTasks(ctx, now)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if opened != 0 {
		t.Fatalf("expected no reminders, got %d", opened)
	}
}
