package testutil

import (
	"gamebot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUserExists(userID int64, username string) error {
	args := m.Called(userID, username)
	return args.Error(0)
}

func (m *MockUserRepository) AllUserIDs() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockLibraryRepository is a mock for LibraryRepository
type MockLibraryRepository struct {
	mock.Mock
}

func (m *MockLibraryRepository) AddMark(userID int64, kind domain.MarkKind, title string) error {
	args := m.Called(userID, kind, title)
	return args.Error(0)
}

func (m *MockLibraryRepository) Marks(userID int64, kind domain.MarkKind) ([]string, error) {
	args := m.Called(userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockQueryLogRepository is a mock for QueryLogRepository
type MockQueryLogRepository struct {
	mock.Mock
}

func (m *MockQueryLogRepository) Append(entry domain.QueryLogEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

// MockScheduleRepository is a mock for ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(targetUserID int64, text string, dueAt int64) error {
	args := m.Called(targetUserID, text, dueAt)
	return args.Error(0)
}

func (m *MockScheduleRepository) Pending() ([]domain.ScheduledMessage, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledMessage), args.Error(1)
}

func (m *MockScheduleRepository) MarkSent(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
