package services

import (
	"context"
	"errors"
	"testing"

	"coopfund/internal/core/domain"
)

func TestCreateMember_OpensZeroSavingsAccount(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")

	saving, err := env.store.Savings.GetByMemberID(context.Background(), member.ID)
	if err != nil {
		t.Fatalf("get saving: %v", err)
	}
	if saving.TotalSavings != 0 {
		t.Fatalf("new savings account: expected 0 balance, got %v", saving.TotalSavings)
	}
}

func TestCreateMember_RejectsDuplicateEmployeeID(t *testing.T) {
	env := newLedgerEnv(t)
	env.newMember(t, "EMP-1")
	ctx := context.Background()

	user := &domain.User{Username: "second", Password: "x", FullName: "Second", Email: "second@example.org", Role: domain.RoleMember}
	if err := env.store.Users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	svc := NewMemberService(env.store.Members, env.store.Savings, env.store.Users)
	_, err := svc.Create(ctx, &CreateMemberInput{
		UserID:     user.ID,
		EmployeeID: "EMP-1",
		Department: "HR",
		Position:   "Clerk",
	})
	if !errors.Is(err, domain.ErrEmployeeIDAlreadyUsed) {
		t.Fatalf("expected ErrEmployeeIDAlreadyUsed, got %v", err)
	}
}

func TestCreateMember_DefaultsToNewStatus(t *testing.T) {
	env := newLedgerEnv(t)
	ctx := context.Background()

	user := &domain.User{Username: "fresh", Password: "x", FullName: "Fresh", Email: "fresh@example.org", Role: domain.RoleMember}
	if err := env.store.Users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	svc := NewMemberService(env.store.Members, env.store.Savings, env.store.Users)
	member, err := svc.Create(ctx, &CreateMemberInput{
		UserID:     user.ID,
		EmployeeID: "EMP-9",
		Department: "HR",
		Position:   "Clerk",
	})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if member.Status != domain.MemberNew {
		t.Fatalf("default status: expected new, got %s", member.Status)
	}
}

func TestUpdateMember_PartialPatch(t *testing.T) {
	env := newLedgerEnv(t)
	member := env.newMember(t, "EMP-1")
	ctx := context.Background()

	svc := NewMemberService(env.store.Members, env.store.Savings, env.store.Users)
	onLeave := domain.MemberOnLeave
	updated, err := svc.Update(ctx, member.ID, &UpdateMemberInput{Status: &onLeave})
	if err != nil {
		t.Fatalf("update member: %v", err)
	}

	if updated.Status != domain.MemberOnLeave {
		t.Fatalf("status: expected on_leave, got %s", updated.Status)
	}
	if updated.Department != member.Department || updated.EmployeeID != member.EmployeeID {
		t.Fatal("unpatched fields must be preserved")
	}
}

func TestUpdateMember_UnknownID(t *testing.T) {
	env := newLedgerEnv(t)
	svc := NewMemberService(env.store.Members, env.store.Savings, env.store.Users)

	dept := "Finance"
	_, err := svc.Update(context.Background(), 42, &UpdateMemberInput{Department: &dept})
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}
