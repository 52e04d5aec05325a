package auth

import (
	"context"

	"github.com/mtarnawa/quill/internal/application/ports"
	domerrors "github.com/mtarnawa/quill/internal/domain/errors"
)

type SigninInput struct {
	Email    string
	Password string
}

type Signin struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	creds  *CredentialIssuer
}

func NewSignin(users ports.UserRepository, hasher ports.PasswordHasher, creds *CredentialIssuer) *Signin {
	return &Signin{users: users, hasher: hasher, creds: creds}
}

// Execute authenticates a local account. Federated accounts are rejected with
// ErrUseGoogleLogin before any hash comparison. Credential shape is not
// re-validated here; the policy runs on sign-up only.
func (uc *Signin) Execute(ctx context.Context, input SigninInput) (*Credentials, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if user.Federated() {
		return nil, domerrors.ErrUseGoogleLogin
	}
	ok, err := uc.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domerrors.ErrInvalidPassword
	}
	return uc.creds.Issue(user)
}
