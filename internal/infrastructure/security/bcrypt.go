package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mtarnawa/quill/internal/application/ports"
)

// DefaultBcryptCost is the fixed work factor for new hashes.
const DefaultBcryptCost = 10

// BcryptHasher implements ports.PasswordHasher with bcrypt. The salt is
// embedded in the encoded hash.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify returns (false, nil) on a mismatch and (false, err) when the stored
// hash cannot be compared at all (truncated or malformed).
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// Ensure BcryptHasher implements ports.PasswordHasher.
var _ ports.PasswordHasher = (*BcryptHasher)(nil)
