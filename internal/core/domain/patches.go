package domain

import "time"

// Patch types carry partial updates. A nil field is left untouched; entity
// identifiers are not patchable.

// UserPatch is a partial update to a User
type UserPatch struct {
	Username *string
	Password *string
	FullName *string
	Email    *string
	Role     *Role
	Avatar   *string
}

// MemberPatch is a partial update to a Member
type MemberPatch struct {
	Department          *string
	Position            *string
	JoinDate            *time.Time
	PhoneNumber         *string
	Address             *string
	Status              *MemberStatus
	MonthlyContribution *float64
}

// TransactionPatch is a partial update to a Transaction
type TransactionPatch struct {
	Description *string
	Status      *TransactionStatus
}

// SavingPatch is a partial update to a Saving
type SavingPatch struct {
	TotalSavings *float64
	LastUpdate   *time.Time
}

// LoanPatch is a partial update to a Loan
type LoanPatch struct {
	Status         *LoanStatus
	ApprovalDate   *time.Time
	TotalRepaid    *float64
	NextPaymentDue *time.Time
	MonthlyPayment *float64
}

// TaskPatch is a partial update to a Task
type TaskPatch struct {
	Title            *string
	Description      *string
	Status           *TaskStatus
	AssignedToUserID *uint
	DueDate          *time.Time
}
