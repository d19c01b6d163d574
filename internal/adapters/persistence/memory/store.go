package memory

import (
	"coopfund/internal/adapters/persistence/repositories"
)

// Store bundles every in-memory repository behind one handle so wiring and
// seeding share the same instances.
type Store struct {
	Users         repositories.UserRepository
	RefreshTokens repositories.RefreshTokenRepository
	Members       repositories.MemberRepository
	Transactions  repositories.TransactionRepository
	Savings       repositories.SavingRepository
	Loans         repositories.LoanRepository
	Dividends     repositories.DividendRepository
	Distributions repositories.DividendDistributionRepository
	Tasks         repositories.TaskRepository
}

// NewStore creates a store with empty repositories
func NewStore() *Store {
	return &Store{
		Users:         NewUserRepository(),
		RefreshTokens: NewRefreshTokenRepository(),
		Members:       NewMemberRepository(),
		Transactions:  NewTransactionRepository(),
		Savings:       NewSavingRepository(),
		Loans:         NewLoanRepository(),
		Dividends:     NewDividendRepository(),
		Distributions: NewDividendDistributionRepository(),
		Tasks:         NewTaskRepository(),
	}
}
