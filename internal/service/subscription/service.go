package subscription

import (
	"context"
	"errors"
	"strings"

	"techmobile/internal/domain"
	subscriberrepo "techmobile/internal/repository/subscriber"
)

var (
	// ErrEmailRequired is returned for a blank email.
	ErrEmailRequired = errors.New("email is required")
	// ErrAlreadySubscribed is returned for a duplicate signup.
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

type Service struct {
	repo subscriberrepo.Repository
}

func New(repo subscriberrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Subscribe records a newsletter signup.
func (s *Service) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	sub, err := s.repo.Create(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return sub, nil
}
