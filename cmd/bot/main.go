package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamebot/internal/catalog"
	"gamebot/internal/config"
	"gamebot/internal/domain"
	"gamebot/internal/handler"
	"gamebot/internal/repository/postgres"
	"gamebot/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting game store bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.Int("admins", len(cfg.AdminIDs)),
	)

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Load the catalog; starting without one makes no sense.
	loader := catalog.NewLoader(cfg.CatalogURL)
	entries, err := loadCatalog(loader, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	catalogIndex := catalog.NewIndex(entries)

	logger.Info("Catalog loaded", zap.Int("entries", len(entries)))

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	libraryRepo := postgres.NewLibraryRepo(db)
	queryLogRepo := postgres.NewQueryLogRepo(db)
	scheduleRepo := postgres.NewScheduleRepo(db)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize services
	libraryService := service.NewLibraryService(libraryRepo)
	userService := service.NewUserService(userRepo, queryLogRepo)
	dialogService := service.NewDialogService(catalogIndex, libraryService, logger)
	orderService := service.NewOrderService(logger)
	scheduleService := service.NewScheduleService(
		scheduleRepo,
		handler.NewTelebotSender(bot),
		cfg.PollInterval,
		logger,
	)

	// Initialize handler
	h := handler.NewHandler(bot, cfg, dialogService, userService, orderService, scheduleService, catalogIndex, loader, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start scheduler in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go scheduleService.Run(ctx)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied")
	return nil
}

// loadCatalog fetches the catalog with retries; a flaky download should
// not kill startup outright.
func loadCatalog(loader *catalog.Loader, logger *zap.Logger) ([]domain.CatalogEntry, error) {
	var entries []domain.CatalogEntry
	var err error

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		entries, err = loader.Fetch(ctx)
		cancel()
		if err == nil {
			return entries, nil
		}

		logger.Warn("Catalog download failed",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		time.Sleep(5 * time.Second)
	}

	return nil, err
}
