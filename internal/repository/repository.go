package repository

import (
	"gamebot/internal/domain"
)

// UserRepository defines known-user data operations.
type UserRepository interface {
	EnsureUserExists(userID int64, username string) error
	AllUserIDs() ([]int64, error)
}

// LibraryRepository defines per-user marked-game list operations.
// The three mark kinds are independent sets.
type LibraryRepository interface {
	AddMark(userID int64, kind domain.MarkKind, title string) error
	Marks(userID int64, kind domain.MarkKind) ([]string, error)
}

// QueryLogRepository appends search queries to the append-only log.
type QueryLogRepository interface {
	Append(entry domain.QueryLogEntry) error
}

// ScheduleRepository defines deferred-message queue operations.
type ScheduleRepository interface {
	Create(targetUserID int64, text string, dueAt int64) error
	Pending() ([]domain.ScheduledMessage, error)
	MarkSent(id int64) error
}
