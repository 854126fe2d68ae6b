package service

import (
	"gamebot/internal/domain"
	"gamebot/internal/repository"
)

// UserService tracks known users and the search query log.
type UserService struct {
	userRepo repository.UserRepository
	logRepo  repository.QueryLogRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, logRepo repository.QueryLogRepository) *UserService {
	return &UserService{userRepo: userRepo, logRepo: logRepo}
}

// EnsureUserExists creates user record if doesn't exist
func (s *UserService) EnsureUserExists(userID int64, username string) error {
	return s.userRepo.EnsureUserExists(userID, username)
}

// AllUserIDs returns every known user id, used for broadcasts.
func (s *UserService) AllUserIDs() ([]int64, error) {
	return s.userRepo.AllUserIDs()
}

// LogQuery appends one inbound text to the append-only search log.
func (s *UserService) LogQuery(userID int64, username, query string) error {
	return s.logRepo.Append(domain.QueryLogEntry{
		UserID:   userID,
		Username: username,
		Query:    query,
	})
}
