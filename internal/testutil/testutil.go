package testutil

import (
	"gamebot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCatalog returns the two-game catalog most scenario tests use.
func NewTestCatalog() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{Title: "God of War", Url: "u1"},
		{Title: "Gran Turismo", Url: "u2"},
	}
}

// NewTestScheduledMessage creates a scheduled message fixture.
func NewTestScheduledMessage(id, target int64, text string, dueAt int64) domain.ScheduledMessage {
	return domain.ScheduledMessage{
		ID:           id,
		TargetUserID: target,
		Text:         text,
		DueAt:        dueAt,
		Status:       domain.ScheduleStatusPending,
	}
}
