package repositories

import (
	"context"

	"coopfund/internal/core/domain"
)

// Repositories return domain.ErrNotFound for unknown IDs; callers decide
// whether absence is an error. Identifiers are assigned by Create from a
// per-entity monotonic counter and are never reused. Entities are never
// physically removed.

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id uint, patch *domain.UserPatch) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
}

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id uint) (*domain.Member, error)
	GetByUserID(ctx context.Context, userID uint) (*domain.Member, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Member, error)
	Update(ctx context.Context, id uint, patch *domain.MemberPatch) (*domain.Member, error)
	List(ctx context.Context) ([]*domain.Member, error)
	ListByStatus(ctx context.Context, status domain.MemberStatus) ([]*domain.Member, error)
}

// TransactionRepository defines transaction repository interface
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id uint) (*domain.Transaction, error)
	Update(ctx context.Context, id uint, patch *domain.TransactionPatch) (*domain.Transaction, error)
	List(ctx context.Context) ([]*domain.Transaction, error)
	ListByMemberID(ctx context.Context, memberID uint) ([]*domain.Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Transaction, error)
}

// SavingRepository defines savings repository interface
type SavingRepository interface {
	Create(ctx context.Context, saving *domain.Saving) error
	GetByID(ctx context.Context, id uint) (*domain.Saving, error)
	GetByMemberID(ctx context.Context, memberID uint) (*domain.Saving, error)
	Update(ctx context.Context, id uint, patch *domain.SavingPatch) (*domain.Saving, error)
	List(ctx context.Context) ([]*domain.Saving, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id uint) (*domain.Loan, error)
	Update(ctx context.Context, id uint, patch *domain.LoanPatch) (*domain.Loan, error)
	List(ctx context.Context) ([]*domain.Loan, error)
	ListByMemberID(ctx context.Context, memberID uint) ([]*domain.Loan, error)
	ListByStatus(ctx context.Context, status domain.LoanStatus) ([]*domain.Loan, error)
	ListOpen(ctx context.Context) ([]*domain.Loan, error)
}

// DividendRepository defines dividend repository interface
type DividendRepository interface {
	Create(ctx context.Context, dividend *domain.Dividend) error
	GetByID(ctx context.Context, id uint) (*domain.Dividend, error)
	List(ctx context.Context) ([]*domain.Dividend, error)
	GetLatest(ctx context.Context) (*domain.Dividend, error)
}

// DividendDistributionRepository defines dividend distribution repository interface
type DividendDistributionRepository interface {
	Create(ctx context.Context, dist *domain.DividendDistribution) error
	GetByID(ctx context.Context, id uint) (*domain.DividendDistribution, error)
	ListByDividendID(ctx context.Context, dividendID uint) ([]*domain.DividendDistribution, error)
	ListByMemberID(ctx context.Context, memberID uint) ([]*domain.DividendDistribution, error)
}

// TaskRepository defines task repository interface
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id uint) (*domain.Task, error)
	Update(ctx context.Context, id uint, patch *domain.TaskPatch) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListPending(ctx context.Context) ([]*domain.Task, error)
	ListByType(ctx context.Context, taskType string) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, userID uint) ([]*domain.Task, error)
}
