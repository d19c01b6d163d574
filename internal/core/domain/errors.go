package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Member errors
var (
	ErrMemberNotFound         = errors.New("member not found")
	ErrEmployeeIDAlreadyUsed  = errors.New("employee id already registered")
	ErrInvalidMemberStatus    = errors.New("invalid member status")
)

// Ledger errors
var (
	ErrInvalidAmount            = errors.New("amount must be greater than zero")
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")
	// ErrSavingNotInitialized means a member exists without a savings
	// account. Member creation always creates one, so this is a broken
	// invariant rather than a caller mistake.
	ErrSavingNotInitialized = errors.New("savings account not initialized for member")
	ErrSavingNotFound       = errors.New("savings account not found")
)

// Loan errors
var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrInvalidLoanStatus = errors.New("invalid loan status")
	ErrInvalidLoanTerm   = errors.New("loan term must be at least one month")
	ErrInvalidInterest   = errors.New("interest rate must not be negative")
)

// Dividend errors
var (
	ErrDividendNotFound           = errors.New("dividend not found")
	ErrInvalidDistributionStatus  = errors.New("invalid distribution status")
	ErrNoEligibleMembers          = errors.New("no eligible members for distribution")
)

// Task errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)
