package ports

import "context"

// PasswordHasher hashes and verifies passwords (bcrypt). Verify distinguishes
// a mismatch (false, nil) from an internal comparison failure (false, err).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenIssuer signs access tokens whose subject is the user id.
type TokenIssuer interface {
	IssueAccessToken(userID string) (string, error)
	// ValidateAccessToken returns the user id carried by the token.
	ValidateAccessToken(tokenString string) (userID string, err error)
}

// GoogleClaims is the subset of the verified provider token this service uses.
type GoogleClaims struct {
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier checks a provider-issued ID token and extracts its claims.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}
