package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mtarnawa/quill/internal/application/ports"
	"github.com/mtarnawa/quill/internal/domain"
	domerrors "github.com/mtarnawa/quill/internal/domain/errors"
)

// Provider avatars arrive at thumbnail size; swap in the larger variant.
const (
	pictureSizeSmall = "s96-c"
	pictureSizeLarge = "s384-c"
)

type GoogleSignIn struct {
	verifier  ports.GoogleVerifier
	users     ports.UserRepository
	usernames *UsernameGenerator
	creds     *CredentialIssuer
}

func NewGoogleSignIn(verifier ports.GoogleVerifier, users ports.UserRepository, usernames *UsernameGenerator, creds *CredentialIssuer) *GoogleSignIn {
	return &GoogleSignIn{verifier: verifier, users: users, usernames: usernames, creds: creds}
}

// Execute verifies the provider token and signs the federated user in,
// creating the account on first contact.
func (uc *GoogleSignIn) Execute(ctx context.Context, providerToken string) (*Credentials, error) {
	claims, err := uc.verifier.Verify(ctx, providerToken)
	if err != nil {
		return nil, domerrors.ErrGoogleAuthFailed
	}
	return uc.SignIn(ctx, claims)
}

// SignIn runs the lookup-or-create flow for already-verified provider claims.
// The OAuth redirect callback funnels in here as well.
func (uc *GoogleSignIn) SignIn(ctx context.Context, claims *ports.GoogleClaims) (*Credentials, error) {
	// Provider claims carry the user's original casing; accounts are keyed
	// by the lowercased email on every path.
	email := strings.TrimSpace(strings.ToLower(claims.Email))
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return uc.issueExisting(user)
	}
	username, err := uc.usernames.Generate(ctx, email)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user = &domain.User{
		ID:         domain.NewUserID(uuid.New()),
		FullName:   claims.Name,
		Email:      email,
		Username:   username,
		ProfileImg: strings.Replace(claims.Picture, pictureSizeSmall, pictureSizeLarge, 1),
		GoogleAuth: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		// A concurrent signup can win the race between lookup and insert.
		// Duplicate key is recoverable here: re-fetch and proceed as the
		// "exists" case instead of failing the request.
		if errors.Is(err, domerrors.ErrEmailExists) {
			existing, gerr := uc.users.GetByEmail(ctx, email)
			if gerr != nil {
				return nil, gerr
			}
			if existing == nil {
				return nil, err
			}
			return uc.issueExisting(existing)
		}
		return nil, err
	}
	return uc.creds.Issue(user)
}

func (uc *GoogleSignIn) issueExisting(user *domain.User) (*Credentials, error) {
	if !user.Federated() {
		return nil, domerrors.ErrAlreadyRegisteredLocal
	}
	return uc.creds.Issue(user)
}
