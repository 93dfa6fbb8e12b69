package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/trendwave/connect/internal/database"
	"github.com/trendwave/connect/internal/mail"
	"github.com/trendwave/connect/internal/tasks"
	"github.com/trendwave/connect/pkg/config"
	"github.com/trendwave/connect/pkg/crypto"
	"github.com/trendwave/connect/pkg/queue"
	"github.com/trendwave/connect/pkg/util"
)

// Hourly sweep of expired reset tokens.
const purgeSchedule = "0 * * * *"

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting TrendWave Connect worker")

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Encryptor must share the server's key to unseal queued credentials
	encryptor, err := crypto.NewEncryptor(cfg.Encryption.Key)
	if err != nil {
		logger.Error("failed to create encryptor", "error", err)
		os.Exit(1)
	}

	// Pick the mailer: Mailgun when configured, log-only otherwise
	var mailer mail.Mailer
	if cfg.Mail.Configured() {
		mailer = mail.NewMailgun(cfg.Mail.Domain, cfg.Mail.APIKey, cfg.Mail.APIBase)
	} else {
		logger.Warn("mail provider not configured, emails will be logged only")
		mailer = &mail.LogMailer{Logger: logger}
	}

	// Create Asynq server and client
	srv := queue.NewServer(&cfg.Redis, 10)
	client := queue.NewClient(&cfg.Redis)
	defer client.Close()

	// Create task handler
	handler := tasks.NewHandler(db, logger, mailer, encryptor, cfg.Mail.From, cfg.Server.BaseURL)

	// Register handlers
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	// Schedule the maintenance sweep
	if err := util.ValidateCronExpr(purgeSchedule); err != nil {
		logger.Error("invalid purge schedule", "error", err)
		os.Exit(1)
	}
	scheduler := cron.New()
	_, err = scheduler.AddFunc(purgeSchedule, func() {
		if _, err := client.Enqueue(tasks.NewPurgeResetTokenTask(), asynq.Queue("low")); err != nil {
			logger.Error("failed to enqueue reset token purge", "error", err)
		}
	})
	if err != nil {
		logger.Error("failed to schedule reset token purge", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	// Handle shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down worker...")
		scheduler.Stop()
		srv.Shutdown()
	}()

	logger.Info("worker started, waiting for tasks...")

	// Start the server
	if err := srv.Run(mux); err != nil {
		logger.Error("worker error", "error", err)
		os.Exit(1)
	}

	logger.Info("worker stopped")
}
