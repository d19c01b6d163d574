package bootstrap

import (
	"context"
	"log"

	"coopfund/internal/adapters/persistence/memory"
	"coopfund/internal/config"
	"coopfund/internal/core/domain"
	"coopfund/internal/core/services"
	"coopfund/internal/pkg/password"
)

// Seeder populates the in-memory store at startup. The store starts empty on
// every boot, so the admin account is always seeded; demo data is added in
// dev mode only.
type Seeder struct {
	store *memory.Store
	cfg   *config.Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(store *memory.Store, cfg *config.Config) *Seeder {
	return &Seeder{store: store, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("Running seeders...")

	if err := s.seedAdminUser(ctx); err != nil {
		return err
	}

	if s.cfg.IsDev() {
		if err := s.seedDemoData(ctx); err != nil {
			log.Printf("Warning: demo data seeder failed: %v", err)
		}
	}

	log.Println("Seeding completed")
	return nil
}

// seedAdminUser seeds the bootstrap admin account from config
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	exists, err := s.store.Users.ExistsByUsername(ctx, s.cfg.Admin.Username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username: s.cfg.Admin.Username,
		Password: hashedPassword,
		FullName: "System Administrator",
		Email:    "admin@coopfund.local",
		Role:     domain.RoleAdmin,
	}
	if err := s.store.Users.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("Admin user created: %s", admin.Username)
	return nil
}

// seedDemoData seeds a demo member with some ledger history. Going through
// the services keeps the cascades (savings balance, approval task) in play.
func (s *Seeder) seedDemoData(ctx context.Context) error {
	ledger := services.NewLedgerService(s.store.Members, s.store.Transactions, s.store.Savings, s.store.Loans)
	memberService := services.NewMemberService(s.store.Members, s.store.Savings, s.store.Users)
	loanService := services.NewLoanService(s.store.Loans, s.store.Members, s.store.Tasks, ledger)

	hashedPassword, err := password.Hash("member1234")
	if err != nil {
		return err
	}
	user := &domain.User{
		Username: "somsak",
		Password: hashedPassword,
		FullName: "Somsak Jaidee",
		Email:    "somsak@coopfund.local",
		Role:     domain.RoleMember,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return err
	}

	member, err := memberService.Create(ctx, &services.CreateMemberInput{
		UserID:              user.ID,
		EmployeeID:          "EMP-0001",
		Department:          "Operations",
		Position:            "Technician",
		Status:              domain.MemberActive,
		MonthlyContribution: 1500,
	})
	if err != nil {
		return err
	}

	for _, amount := range []float64{1500, 1500, 2000} {
		if _, err := ledger.RecordTransaction(ctx, &services.RecordTransactionInput{
			MemberID:    member.ID,
			Type:        domain.TxDeposit,
			Amount:      amount,
			Description: "Monthly contribution",
			Status:      domain.TxCompleted,
		}); err != nil {
			return err
		}
	}

	if _, err := loanService.Create(ctx, &services.CreateLoanInput{
		MemberID:     member.ID,
		Amount:       50000,
		InterestRate: 4.5,
		Term:         24,
		Purpose:      "Home repairs",
	}); err != nil {
		return err
	}

	log.Printf("Demo member created: %s", member.EmployeeID)
	return nil
}
