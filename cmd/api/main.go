// Package main is the entry point for the freight back-office API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/freight-backoffice/backend/config"
	"github.com/freight-backoffice/backend/internal/infra/db"
	"github.com/freight-backoffice/backend/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting freight back-office API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"ledger_source", cfg.Database.LedgerSource,
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize database connection; the CSV ledgers work without it
	var gormDB *gorm.DB
	var dbHealthChecker func() bool

	if cfg.Database.Enabled {
		database, err := db.NewPostgresConnection(&cfg.Database)
		if err != nil {
			slog.Warn("Database connection failed, running on CSV ledgers only",
				"error", err,
			)
			dbHealthChecker = func() bool { return false }
		} else {
			if err := database.Migrate(); err != nil {
				slog.Error("Failed to run database migrations", "error", err)
				os.Exit(1)
			}
			slog.Info("Database migrations completed successfully")

			gormDB = database.DB()
			dbHealthChecker = database.HealthCheck
			defer func() {
				if err := database.Close(); err != nil {
					slog.Error("Failed to close database connection", "error", err)
				}
			}()
		}
	}

	injector, err := dependency.NewInjector(ctx, cfg, gormDB, dbHealthChecker)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}
	defer injector.Close()

	// Background workers
	if injector.EmailWorker != nil {
		go injector.EmailWorker.Start(ctx)
	}
	go injector.RateLimiter.StartCleanup(ctx, 5*time.Minute)

	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
