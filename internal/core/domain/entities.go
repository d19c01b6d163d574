package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// MemberStatus represents member status
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
	MemberNew      MemberStatus = "new"
	MemberOnLeave  MemberStatus = "on_leave"
)

// TransactionType represents the kind of ledger entry
type TransactionType string

const (
	TxDeposit          TransactionType = "deposit"
	TxWithdrawal       TransactionType = "withdrawal"
	TxLoanDisbursement TransactionType = "loan_disbursement"
	TxLoanRepayment    TransactionType = "loan_repayment"
	TxDividendPayment  TransactionType = "dividend_payment"
)

// TransactionStatus represents transaction status
type TransactionStatus string

const (
	TxCompleted TransactionStatus = "completed"
	TxPending   TransactionStatus = "pending"
	TxCancelled TransactionStatus = "cancelled"
	TxFailed    TransactionStatus = "failed"
)

// LoanStatus represents loan status
type LoanStatus string

const (
	LoanPending   LoanStatus = "pending"
	LoanApproved  LoanStatus = "approved"
	LoanRejected  LoanStatus = "rejected"
	LoanActive    LoanStatus = "active"
	LoanCompleted LoanStatus = "completed"
	LoanDefaulted LoanStatus = "defaulted"
)

// DistributionStatus represents dividend distribution status
type DistributionStatus string

const (
	DistributionCompleted DistributionStatus = "completed"
	DistributionPending   DistributionStatus = "pending"
	DistributionFailed    DistributionStatus = "failed"
)

// TaskStatus represents task status
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Task types created automatically by the services
const (
	TaskTypeLoanApproval    = "loan_approval"
	TaskTypePaymentReminder = "payment_reminder"
)

// User represents a login account
type User struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Password string  `json:"-"` // bcrypt hash, never serialized
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Role     Role    `json:"role"`
	Avatar   *string `json:"avatar,omitempty"`
}

// Member represents a cooperative member
type Member struct {
	ID                  uint         `json:"id"`
	UserID              uint         `json:"userId"`
	EmployeeID          string       `json:"employeeId"`
	Department          string       `json:"department"`
	Position            string       `json:"position"`
	JoinDate            time.Time    `json:"joinDate"`
	PhoneNumber         *string      `json:"phoneNumber,omitempty"`
	Address             *string      `json:"address,omitempty"`
	Status              MemberStatus `json:"status"`
	MonthlyContribution float64      `json:"monthlyContribution"`
}

// Transaction represents a ledger entry for a member
type Transaction struct {
	ID          uint              `json:"id"`
	MemberID    uint              `json:"memberId"`
	Type        TransactionType   `json:"type"`
	Amount      float64           `json:"amount"`
	Date        time.Time         `json:"date"`
	Description *string           `json:"description,omitempty"`
	Status      TransactionStatus `json:"status"`
}

// Saving represents a member's savings account (one per member)
type Saving struct {
	ID           uint      `json:"id"`
	MemberID     uint      `json:"memberId"`
	TotalSavings float64   `json:"totalSavings"`
	LastUpdate   time.Time `json:"lastUpdate"`
}

// Loan represents a member loan
type Loan struct {
	ID              uint       `json:"id"`
	MemberID        uint       `json:"memberId"`
	Amount          float64    `json:"amount"`
	InterestRate    float64    `json:"interestRate"` // percent per annum
	Term            int        `json:"term"`         // months
	Purpose         string     `json:"purpose"`
	ApplicationDate time.Time  `json:"applicationDate"`
	ApprovalDate    *time.Time `json:"approvalDate,omitempty"`
	Status          LoanStatus `json:"status"`
	TotalRepaid     float64    `json:"totalRepaid"`
	NextPaymentDue  *time.Time `json:"nextPaymentDue,omitempty"`
	MonthlyPayment  float64    `json:"monthlyPayment"`
}

// Dividend represents a cooperative-wide distribution period
type Dividend struct {
	ID               uint      `json:"id"`
	Year             int       `json:"year"`
	Month            int       `json:"month"`
	TotalAmount      float64   `json:"totalAmount"`
	DistributionDate time.Time `json:"distributionDate"`
	Description      *string   `json:"description,omitempty"`
}

// DividendDistribution represents a per-member share of a dividend
type DividendDistribution struct {
	ID               uint               `json:"id"`
	DividendID       uint               `json:"dividendId"`
	MemberID         uint               `json:"memberId"`
	Amount           float64            `json:"amount"`
	DistributionDate time.Time          `json:"distributionDate"`
	Status           DistributionStatus `json:"status"`
}

// Task represents an administrative work item
type Task struct {
	ID               uint       `json:"id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	Type             string     `json:"type"`
	Status           TaskStatus `json:"status"`
	AssignedToUserID *uint      `json:"assignedToUserId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
}

// RefreshToken represents a stored refresh token (hash only)
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked reports whether the refresh token has been revoked
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired reports whether the refresh token has expired
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// ValidTransactionType reports whether t is a known transaction type
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TxDeposit, TxWithdrawal, TxLoanDisbursement, TxLoanRepayment, TxDividendPayment:
		return true
	}
	return false
}

// ValidTransactionStatus reports whether s is a known transaction status
func ValidTransactionStatus(s TransactionStatus) bool {
	switch s {
	case TxCompleted, TxPending, TxCancelled, TxFailed:
		return true
	}
	return false
}

// ValidLoanStatus reports whether s is a known loan status
func ValidLoanStatus(s LoanStatus) bool {
	switch s {
	case LoanPending, LoanApproved, LoanRejected, LoanActive, LoanCompleted, LoanDefaulted:
		return true
	}
	return false
}

// ValidMemberStatus reports whether s is a known member status
func ValidMemberStatus(s MemberStatus) bool {
	switch s {
	case MemberActive, MemberInactive, MemberNew, MemberOnLeave:
		return true
	}
	return false
}

// ValidDistributionStatus reports whether s is a known distribution status
func ValidDistributionStatus(s DistributionStatus) bool {
	switch s {
	case DistributionCompleted, DistributionPending, DistributionFailed:
		return true
	}
	return false
}

// AffectsSavings reports whether a completed transaction of this type moves
// the member's savings balance. Disbursements pay out loan principal and
// never touch savings.
func (t TransactionType) AffectsSavings() bool {
	switch t {
	case TxDeposit, TxWithdrawal, TxLoanRepayment, TxDividendPayment:
		return true
	}
	return false
}

// SavingsDelta returns the signed effect of amount on a savings balance for
// this transaction type. Zero for types that do not affect savings.
func (t TransactionType) SavingsDelta(amount float64) float64 {
	switch t {
	case TxDeposit, TxLoanRepayment, TxDividendPayment:
		return amount
	case TxWithdrawal:
		return -amount
	}
	return 0
}
