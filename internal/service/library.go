package service

import (
	"fmt"

	"gamebot/internal/domain"
	"gamebot/internal/repository"
)

// LibraryService handles per-user marked-game lists.
type LibraryService struct {
	libraryRepo repository.LibraryRepository
}

// NewLibraryService creates a new library service
func NewLibraryService(libraryRepo repository.LibraryRepository) *LibraryService {
	return &LibraryService{libraryRepo: libraryRepo}
}

// AddMark records a title under one mark kind. Kinds are independent:
// marking a title Played does not touch its Completed membership.
func (s *LibraryService) AddMark(userID int64, kind domain.MarkKind, title string) error {
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	return s.libraryRepo.AddMark(userID, kind, title)
}

// Marks returns the user's titles under one mark kind.
func (s *LibraryService) Marks(userID int64, kind domain.MarkKind) ([]string, error) {
	return s.libraryRepo.Marks(userID, kind)
}

// MarkSet returns the user's titles under one mark kind as a set, for
// exclusion during sampling.
func (s *LibraryService) MarkSet(userID int64, kind domain.MarkKind) (map[string]struct{}, error) {
	titles, err := s.libraryRepo.Marks(userID, kind)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		set[title] = struct{}{}
	}
	return set, nil
}
