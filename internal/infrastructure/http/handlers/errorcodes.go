package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeInvalidFullname        = "invalid_fullname"
	ErrCodeEmailRequired          = "email_required"
	ErrCodeInvalidEmail           = "invalid_email"
	ErrCodePasswordTooShort       = "password_too_short"
	ErrCodeWeakPassword           = "weak_password"
	ErrCodeEmailExists            = "email_exists"
	ErrCodeUserNotFound           = "user_not_found"
	ErrCodeInvalidPassword        = "invalid_password"
	ErrCodeUseGoogleLogin         = "use_google_login"
	ErrCodeAlreadyRegisteredLocal = "already_registered_local"
	ErrCodeGoogleAuthFailed       = "google_auth_failed"
	ErrCodeInvalidRequest         = "invalid_request"
	ErrCodeForbidden              = "forbidden"
	ErrCodeConflict               = "conflict"
	ErrCodeInternal               = "internal_error"
)
