package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fintrack/internal/api"
	"fintrack/internal/api/handlers"
	"fintrack/internal/repository"
	"fintrack/internal/service"
	"fintrack/internal/storage"
	"fintrack/pkg/auth"
	"fintrack/pkg/config"
	"fintrack/pkg/logger"
	"fintrack/pkg/postgres"

	"go.uber.org/zap"
)

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
	appLogger.Info("Starting fintrack service")

	// Migrate and connect
	if err := storage.RunMigrations(postgres.DSN(&cfg.Database)); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	txRepo := repository.NewTransactionRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)
	alertRepo := repository.NewAlertRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	// Initialize the alert engine and its background sweep
	alertService := service.NewAlertService(txRepo, budgetRepo, goalRepo, alertRepo, cfg.Alerts, appLogger)

	scheduler := service.NewScheduler(alertService, txRepo, cfg.Alerts.RefreshSchedule, appLogger)
	if err := scheduler.Start(); err != nil {
		appLogger.Fatal("Failed to start alert scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	// Initialize handlers
	txHandler := handlers.NewTransactionHandler(txRepo, alertService, appLogger)
	budgetHandler := handlers.NewBudgetHandler(budgetRepo, alertService, appLogger)
	goalHandler := handlers.NewGoalHandler(goalRepo, alertService, appLogger)
	alertHandler := handlers.NewAlertHandler(alertRepo, alertService, appLogger)

	// Setup router
	app := api.SetupRouter(txHandler, budgetHandler, goalHandler, alertHandler, jwtManager, cfg.Alerts.DemoUserID, appLogger)

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
