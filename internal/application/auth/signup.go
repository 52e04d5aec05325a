package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mtarnawa/quill/internal/application/ports"
	"github.com/mtarnawa/quill/internal/domain"
)

type SignupInput struct {
	Email    string
	Password string
	FullName string
}

type Signup struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	usernames *UsernameGenerator
	creds     *CredentialIssuer
}

func NewSignup(users ports.UserRepository, hasher ports.PasswordHasher, usernames *UsernameGenerator, creds *CredentialIssuer) *Signup {
	return &Signup{users: users, hasher: hasher, usernames: usernames, creds: creds}
}

// Execute validates the credentials, creates the user and issues its first
// access token. Duplicate emails surface as domain/errors.ErrEmailExists from
// the store's uniqueness constraint; signups are never serialized in-process.
func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*Credentials, error) {
	if err := ValidatePolicy(input.Email, input.Password, input.FullName); err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	username, err := uc.usernames.Generate(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		FullName:     input.FullName,
		Email:        input.Email,
		Username:     username,
		PasswordHash: hash,
		GoogleAuth:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.creds.Issue(user)
}
