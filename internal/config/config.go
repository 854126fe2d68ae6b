package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken     string
	AdminIDs     []int64
	CatalogURL   string
	PollInterval time.Duration
	Database     DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables. Values are parsed
// strictly; malformed input is a startup error, never evaluated or guessed.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:     os.Getenv("BOT_TOKEN"),
		CatalogURL:   os.Getenv("CATALOG_URL"),
		PollInterval: 30 * time.Second,
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "gamebot"),
			User:     getEnv("DB_USER", "gamebot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.CatalogURL == "" {
		return nil, fmt.Errorf("CATALOG_URL is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	admins, err := parseAdminIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.AdminIDs = admins

	if raw := os.Getenv("SCHEDULER_POLL_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SCHEDULER_POLL_INTERVAL: %w", err)
		}
		cfg.PollInterval = interval
	}

	return cfg, nil
}

// IsAdmin reports whether the user id is on the operator allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// parseAdminIDs parses the comma-separated operator allow-list.
func parseAdminIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
