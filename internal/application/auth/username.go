package auth

import (
	"context"
	"crypto/rand"
	"strings"

	"github.com/mtarnawa/quill/internal/application/ports"
)

const (
	suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	suffixLength   = 4
)

// UsernameGenerator derives a handle from an email local-part, disambiguating
// collisions with a short random suffix. The suffixed handle is not re-checked:
// username uniqueness is best-effort, email is the authoritative identity key.
type UsernameGenerator struct {
	users ports.UserRepository
}

func NewUsernameGenerator(users ports.UserRepository) *UsernameGenerator {
	return &UsernameGenerator{users: users}
}

// Generate returns the handle for email. Store lookup failures propagate and
// are fatal for the request.
func (g *UsernameGenerator) Generate(ctx context.Context, email string) (string, error) {
	candidate := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		candidate = email[:i]
	}
	taken, err := g.users.UsernameExists(ctx, candidate)
	if err != nil {
		return "", err
	}
	if taken {
		suffix, err := randomSuffix()
		if err != nil {
			return "", err
		}
		candidate += suffix
	}
	return candidate, nil
}

// randomSuffix draws suffixLength characters from suffixAlphabet using
// rejection sampling so every character is equally likely.
func randomSuffix() (string, error) {
	id := make([]byte, 0, suffixLength)
	buf := make([]byte, suffixLength*2)
	for len(id) < suffixLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			idx := int(b & 63)
			if idx < len(suffixAlphabet) {
				id = append(id, suffixAlphabet[idx])
				if len(id) == suffixLength {
					break
				}
			}
		}
	}
	return string(id), nil
}
