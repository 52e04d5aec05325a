package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mtarnawa/quill/internal/application/ports"
	"github.com/mtarnawa/quill/internal/domain"
	domerrors "github.com/mtarnawa/quill/internal/domain/errors"
	"github.com/mtarnawa/quill/internal/infrastructure/persistence/db"
)

// uniqueViolation is the SQLSTATE for a unique-constraint conflict.
const uniqueViolation = "23505"

// queryTimeout bounds every store call. A hung database cancels the query and
// the deadline error reaches the handler as an internal failure.
const queryTimeout = 5 * time.Second

type UserRepository struct {
	q *db.Queries
}

func NewUserRepository(q *db.Queries) *UserRepository {
	return &UserRepository{q: q}
}

// Create inserts the user. A duplicate email is reported as ErrEmailExists;
// the unique index is the only thing enforcing that invariant.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	err := r.q.CreateUser(ctx, domainUserToDB(user))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domerrors.ErrEmailExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	u, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return r.q.UsernameExists(ctx, username)
}

func domainUserToDB(user *domain.User) db.User {
	return db.User{
		ID:           user.ID.UUID,
		FullName:     user.FullName,
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: pgtype.Text{String: user.PasswordHash, Valid: user.PasswordHash != ""},
		ProfileImg:   pgtype.Text{String: user.ProfileImg, Valid: user.ProfileImg != ""},
		GoogleAuth:   user.GoogleAuth,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(u.ID),
		FullName:     u.FullName,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash.String,
		ProfileImg:   u.ProfileImg.String,
		GoogleAuth:   u.GoogleAuth,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
