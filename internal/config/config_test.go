package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseAdminIDs(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		expected      []int64
		expectedError bool
	}{
		{
			name:     "empty list",
			raw:      "",
			expected: nil,
		},
		{
			name:     "single id",
			raw:      "123",
			expected: []int64{123},
		},
		{
			name:     "multiple ids with spaces",
			raw:      "123, 456 ,789",
			expected: []int64{123, 456, 789},
		},
		{
			name:     "trailing comma",
			raw:      "123,",
			expected: []int64{123},
		},
		{
			name:          "non-numeric entry",
			raw:           "123,abc",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := parseAdminIDs(tt.raw)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, ids)
			}
		})
	}
}

func TestConfig_IsAdmin(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{123, 456}}

	assert.True(t, cfg.IsAdmin(123))
	assert.True(t, cfg.IsAdmin(456))
	assert.False(t, cfg.IsAdmin(789))
	assert.False(t, (&Config{}).IsAdmin(123))
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("CATALOG_URL", "")
	t.Setenv("DB_PASSWORD", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoad_Full(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("CATALOG_URL", "https://example.com/catalog.xlsx")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("ADMIN_IDS", "111,222")
	t.Setenv("SCHEDULER_POLL_INTERVAL", "45s")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, []int64{111, 222}, cfg.AdminIDs)
	assert.Equal(t, 45*time.Second, cfg.PollInterval)
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoad_InvalidInterval(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("CATALOG_URL", "https://example.com/catalog.xlsx")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SCHEDULER_POLL_INTERVAL", "soon")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
