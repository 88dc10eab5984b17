package subscriber

import (
	"context"

	"techmobile/internal/domain"
)

type Repository interface {
	// Create inserts a subscriber. Duplicate emails return ErrAlreadyExists.
	Create(ctx context.Context, email string) (*domain.Subscriber, error)
}
