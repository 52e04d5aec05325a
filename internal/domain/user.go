package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is an account record. Exactly one of PasswordHash / GoogleAuth is set
// per account: federated accounts carry no local password.
type User struct {
	ID           UserID
	FullName     string
	Email        string
	Username     string
	PasswordHash string
	ProfileImg   string
	GoogleAuth   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Federated reports whether the account signs in through the identity provider.
func (u *User) Federated() bool { return u.GoogleAuth }
