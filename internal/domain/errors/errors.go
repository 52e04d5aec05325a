package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	// Sign-up policy violations (reported with the request, 403).
	ErrInvalidFullname  = errors.New("full name must be at least 3 characters long")
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrWeakPassword     = errors.New("password must contain at least one uppercase letter, one lowercase letter, one number and one special character")

	// Account state conflicts.
	ErrEmailExists            = errors.New("email already exists")
	ErrUserNotFound           = errors.New("user not found for this email")
	ErrInvalidPassword        = errors.New("invalid password")
	ErrUseGoogleLogin         = errors.New("please login with google")
	ErrAlreadyRegisteredLocal = errors.New("user already registered without google account, please use email and password")

	// External collaborators.
	ErrGoogleAuthFailed = errors.New("failed to authenticate with google, try again later")
)
