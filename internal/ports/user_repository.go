package ports

import (
	"context"
	"errors"
	"ride-compare-service/internal/domain"
)

// ErrEmailTaken is returned when registration hits a duplicate email.
var ErrEmailTaken = errors.New("email already exists")

// Port: a boundary for persisting and retrieving user accounts.
type UserRepository interface {
	// Create stores a new user and returns it with its assigned ID.
	Create(ctx context.Context, u domain.User) (domain.User, error)
	// FindByEmail retrieves a user by email. The bool reports existence.
	FindByEmail(ctx context.Context, email string) (domain.User, bool, error)
}
