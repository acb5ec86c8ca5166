package feedback

import (
	"errors"
	"time"

	"github.com/sasyamantra/storefront-backend/internal/user"
)

var ErrForbidden = errors.New("admin role required")

// Service validates and stores feedback submissions. Authorization for the
// admin read side lives here, not in the handler.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Submit(name, email string, rating int, message string) (Entry, error) {
	if name == "" {
		return Entry{}, errors.New("name is required")
	}
	if message == "" {
		return Entry{}, errors.New("message is required")
	}
	if rating < 1 || rating > 5 {
		return Entry{}, errors.New("rating must be between 1 and 5")
	}
	return s.repo.Add(name, email, rating, message, time.Now().UTC().Format(time.RFC3339))
}

func (s *Service) List(requester user.Role) ([]Entry, error) {
	if requester != user.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.repo.List()
}
