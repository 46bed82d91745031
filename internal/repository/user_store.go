package repository

import (
	"context"

	"github.com/soban-iftikhar/BuzzNews/internal/domain/entity"
)

// UserStore persists user accounts.
// Lookup methods return (nil, nil) when no row matches.
type UserStore interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail retrieves the user with the given email, if any.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByEmailOrUsername retrieves any user matching either value.
	// Used to reject duplicate signups.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)
	// Create inserts a new user, assigning its ID.
	// Returns ErrConflict on a duplicate email or username.
	Create(ctx context.Context, user *entity.User) error
}
