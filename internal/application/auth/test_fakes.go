package auth

import (
	"context"
	"sync"

	"github.com/mtarnawa/quill/internal/application/ports"
	"github.com/mtarnawa/quill/internal/domain"
	domerrors "github.com/mtarnawa/quill/internal/domain/errors"
)

// FakeUserRepository is a test-only fake implementing ports.UserRepository.
// It stores users in a map keyed by email and exposes error fields for
// behavior injection.
type FakeUserRepository struct {
	mu        sync.RWMutex
	byEmail   map[string]*domain.User
	CreateErr error
	GetErr    error
	ExistsErr error
	// OnCreate runs once, before Create's duplicate check and outside the
	// lock, so it may call Insert to simulate a concurrent signup winning
	// the race.
	OnCreate func(*domain.User) error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{byEmail: make(map[string]*domain.User)}
}

func (f *FakeUserRepository) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	createErr := f.CreateErr
	hook := f.OnCreate
	f.OnCreate = nil
	f.mu.Unlock()
	if createErr != nil {
		return createErr
	}
	if hook != nil {
		if err := hook(user); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[user.Email]; ok {
		return domerrors.ErrEmailExists
	}
	cp := *user
	f.byEmail[user.Email] = &cp
	return nil
}

func (f *FakeUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *FakeUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.ExistsErr != nil {
		return false, f.ExistsErr
	}
	for _, u := range f.byEmail {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// Insert seeds a user bypassing Create's checks.
func (f *FakeUserRepository) Insert(user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.byEmail[user.Email] = &cp
}

// Len reports how many users the fake holds.
func (f *FakeUserRepository) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.byEmail)
}

var _ ports.UserRepository = (*FakeUserRepository)(nil)

// FakeVerifier is a test-only ports.GoogleVerifier returning canned claims.
type FakeVerifier struct {
	Claims *ports.GoogleClaims
	Err    error
}

func (f *FakeVerifier) Verify(ctx context.Context, idToken string) (*ports.GoogleClaims, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Claims, nil
}

var _ ports.GoogleVerifier = (*FakeVerifier)(nil)
