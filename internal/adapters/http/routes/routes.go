package routes

import (
	"coopfund/internal/adapters/http/handlers"
	"coopfund/internal/adapters/http/middleware"
	"coopfund/internal/adapters/persistence/memory"
	"coopfund/internal/config"
	"coopfund/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, store *memory.Store, cfg *config.Config) {
	// Initialize services
	ledgerService := services.NewLedgerService(store.Members, store.Transactions, store.Savings, store.Loans)
	authService := services.NewAuthService(store.Users, store.RefreshTokens, cfg)
	userService := services.NewUserService(store.Users)
	memberService := services.NewMemberService(store.Members, store.Savings, store.Users)
	loanService := services.NewLoanService(store.Loans, store.Members, store.Tasks, ledgerService)
	dividendService := services.NewDividendService(store.Dividends, store.Distributions, store.Members, store.Savings, ledgerService)
	taskService := services.NewTaskService(store.Tasks, store.Users)
	statsService := services.NewStatsService(store.Members, store.Savings, store.Loans, store.Transactions)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	memberHandler := handlers.NewMemberHandler(memberService, statsService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	savingHandler := handlers.NewSavingHandler(memberService, statsService)
	loanHandler := handlers.NewLoanHandler(loanService, statsService)
	dividendHandler := handlers.NewDividendHandler(dividendService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, with stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes (admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Profile routes (authenticated users)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, userHandler)

	// Member routes
	memberRoutes := apiV1.Group("/members")
	memberRoutes.Use(middleware.AuthMiddleware(cfg))
	setupMemberRoutes(memberRoutes, memberHandler)

	// Transaction routes
	transactionRoutes := apiV1.Group("/transactions")
	transactionRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTransactionRoutes(transactionRoutes, transactionHandler)

	// Saving routes
	savingRoutes := apiV1.Group("/savings")
	savingRoutes.Use(middleware.AuthMiddleware(cfg))
	setupSavingRoutes(savingRoutes, savingHandler)

	// Loan routes
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	setupLoanRoutes(loanRoutes, loanHandler)

	// Dividend routes
	dividendRoutes := apiV1.Group("/dividends")
	dividendRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDividendRoutes(dividendRoutes, dividendHandler)

	// Distribution routes
	distributionRoutes := apiV1.Group("/dividend-distributions")
	distributionRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDistributionRoutes(distributionRoutes, dividendHandler)

	// Task routes (admin only)
	taskRoutes := apiV1.Group("/tasks")
	taskRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTaskRoutes(taskRoutes, taskHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures user management routes (admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
}

// setupProfileRoutes configures profile routes (authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Put("/", handler.UpdateProfile)
	router.Put("/password", handler.ChangePassword)
}

// setupMemberRoutes configures member routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Get("/", handler.List)
	router.Get("/stats", handler.Stats)
	router.Get("/me", handler.Me)
	router.Get("/:id", handler.Get)
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Patch("/:id", middleware.AdminOnly(), handler.Update)
}

// setupTransactionRoutes configures ledger transaction routes
func setupTransactionRoutes(router fiber.Router, handler *handlers.TransactionHandler) {
	router.Get("/", handler.ListRecent)
	router.Get("/member/:memberId", handler.ListByMember)
	router.Get("/:id", handler.Get)
	router.Post("/", middleware.AdminOnly(), handler.Create)
}

// setupSavingRoutes configures savings routes
func setupSavingRoutes(router fiber.Router, handler *handlers.SavingHandler) {
	router.Get("/", handler.List)
	router.Get("/stats", handler.Stats)
	router.Get("/member/:memberId", handler.GetByMember)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.List)
	router.Get("/stats", handler.Stats)
	router.Get("/member/:memberId", handler.ListByMember)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Patch("/:id", middleware.AdminOnly(), handler.Update)
}

// setupDividendRoutes configures dividend routes
func setupDividendRoutes(router fiber.Router, handler *handlers.DividendHandler) {
	router.Get("/", handler.List)
	router.Get("/latest", handler.Latest)
	router.Get("/:id", handler.Get)
	router.Get("/:id/distributions", handler.ListDistributions)
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Post("/:id/distributions/generate", middleware.AdminOnly(), handler.GenerateDistributions)
}

// setupDistributionRoutes configures dividend distribution routes
func setupDistributionRoutes(router fiber.Router, handler *handlers.DividendHandler) {
	router.Get("/member/:memberId", handler.ListDistributionsByMember)
	router.Post("/", middleware.AdminOnly(), handler.CreateDistribution)
}

// setupTaskRoutes configures task routes
func setupTaskRoutes(router fiber.Router, handler *handlers.TaskHandler) {
	router.Get("/me", handler.ListMine)
	router.Get("/", middleware.AdminOnly(), handler.ListPending)
	router.Get("/type/:type", middleware.AdminOnly(), handler.ListByType)
	router.Get("/:id", middleware.AdminOnly(), handler.Get)
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Patch("/:id", middleware.AdminOnly(), handler.Update)
}
