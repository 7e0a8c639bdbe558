package ports

import (
	"context"

	"github.com/moviehub/api/internal/core/domain"
)

type UserRepository interface {
	// GetByEmail returns (nil, nil) when no user exists with that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user. Returns domain.ErrDuplicateEmail when the
	// email is already taken.
	Create(ctx context.Context, user *domain.User) error
}

// UserService resolves principals for the authorization filter.
type UserService interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
