package ports

import (
	"context"

	"github.com/mtarnawa/quill/internal/domain"
)

// UserRepository defines persistence for users. Email uniqueness is enforced by
// the store, not by callers: Create returns domain/errors.ErrEmailExists on a
// duplicate email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail returns (nil, nil) when no user exists for the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// UsernameExists reports whether any user already holds the username.
	UsernameExists(ctx context.Context, username string) (bool, error)
}
