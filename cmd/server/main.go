package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"coopfund/internal/adapters/http/middleware"
	"coopfund/internal/adapters/http/routes"
	"coopfund/internal/adapters/persistence/memory"
	"coopfund/internal/bootstrap"
	"coopfund/internal/config"
	"coopfund/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The store is in-memory only; all data lives for the lifetime of the
	// process.
	store := memory.NewStore()

	// Seed admin account (and demo data in dev mode)
	seeder := bootstrap.NewSeeder(store, cfg)
	if err := seeder.Run(context.Background()); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	// Start the payment reminder scheduler (08:30 daily)
	reminderService := services.NewReminderService(store.Loans, store.Tasks)
	reminderService.Start()
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CoopFund API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, store, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
