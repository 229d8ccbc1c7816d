package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"budgethub/internal/api"
	"budgethub/internal/api/handlers"
	"budgethub/internal/repository"
	"budgethub/internal/service"
	"budgethub/pkg/config"
	"budgethub/pkg/logger"
	"budgethub/pkg/postgres"

	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// @title BudgetHub API
// @version 1.0
// @description Personal budget tracking backend: expenses, category budgets and weekly spending summaries.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting BudgetHub service")

	// Initialize database
	ctx := context.Background()
	if err := postgres.RunMigrations(&cfg.Database); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)

	// Initialize session store
	sessions := session.New(session.Config{
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		Expiration:     cfg.Session.Expiration,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo, appLogger)
	dashboardService := service.NewDashboardService(expenseRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, sessions, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, appLogger)
	budgetHandler := handlers.NewBudgetHandler(budgetService, appLogger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, expenseHandler, budgetHandler, dashboardHandler, sessions, cfg, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
