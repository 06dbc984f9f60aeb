package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mehrnazbaharan/diabetes-companion/internal/bot"
	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/handlers"
	"github.com/mehrnazbaharan/diabetes-companion/internal/bot/state"
	"github.com/mehrnazbaharan/diabetes-companion/internal/config"
	"github.com/mehrnazbaharan/diabetes-companion/internal/database"
	"github.com/mehrnazbaharan/diabetes-companion/internal/logger"
	"github.com/mehrnazbaharan/diabetes-companion/internal/repository"
	"github.com/mehrnazbaharan/diabetes-companion/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warnf(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting Diabetes Companion Bot...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewLogEntryRepository(db)

	aiService, err := services.NewAIService(ctx, cfg.GeminiAPIKey, cfg.OpenAIAPIKey)
	if err != nil {
		logger.Fatalf("Failed to initialize AI service: %v", err)
	}

	deps := handlers.Dependencies{
		Users:   services.NewUserService(userRepo),
		Logbook: services.NewLogbookService(entryRepo),
		Metrics: services.NewMetricsService(userRepo),
		AI:      aiService,
		Backup:  services.NewBackupService(userRepo),
		Reports: services.NewReportService(),
	}
	logger.Info("Services initialized successfully")

	var stateManager state.StateManager
	if cfg.Redis.Host != "" {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisManager.Close()
		stateManager = redisManager
		logger.Info("Using Redis state manager")
	} else {
		stateManager = state.NewManager()
		logger.Info("Using in-memory state manager")
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Fatalf("Bot stopped with error: %v", err)
	}
}
