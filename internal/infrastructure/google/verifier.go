package google

import (
	"context"
	"errors"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/mtarnawa/quill/internal/application/ports"
)

// verifyTimeout bounds the provider call; expired deadlines surface to the
// handler as a failed verification.
const verifyTimeout = 5 * time.Second

// Verifier implements ports.GoogleVerifier with Google's ID-token validator.
// Verification is delegated wholesale to the SDK; this wrapper only extracts
// the claims the service consumes.
type Verifier struct {
	validator *idtoken.Validator
	audience  string
}

// NewVerifier builds a validator. audience is the OAuth client ID the tokens
// must be issued for.
func NewVerifier(ctx context.Context, audience string) (*Verifier, error) {
	v, err := idtoken.NewValidator(ctx)
	if err != nil {
		return nil, err
	}
	return &Verifier{validator: v, audience: audience}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (*ports.GoogleClaims, error) {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	payload, err := v.validator.Validate(ctx, token, v.audience)
	if err != nil {
		return nil, err
	}
	claims := &ports.GoogleClaims{
		Email:   stringClaim(payload.Claims, "email"),
		Name:    stringClaim(payload.Claims, "name"),
		Picture: stringClaim(payload.Claims, "picture"),
	}
	if claims.Email == "" {
		return nil, errors.New("provider token missing email claim")
	}
	return claims, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}

// Ensure Verifier implements ports.GoogleVerifier.
var _ ports.GoogleVerifier = (*Verifier)(nil)
