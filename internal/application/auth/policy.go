package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"

	domerrors "github.com/mtarnawa/quill/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// passwordSymbols is the fixed set of symbols a password may (and must) use.
const passwordSymbols = "@$!%*?&"

// ValidatePolicy checks sign-up credentials and returns the first failing rule
// as a sentinel error, or nil. Rules run in a fixed order; sign-in deliberately
// skips these checks.
func ValidatePolicy(email, password, fullname string) error {
	if utf8.RuneCountInString(fullname) < 3 {
		return domerrors.ErrInvalidFullname
	}
	if email == "" {
		return domerrors.ErrEmailRequired
	}
	if !emailRegex.MatchString(email) {
		return domerrors.ErrInvalidEmail
	}
	if len(password) < 8 {
		return domerrors.ErrPasswordTooShort
	}
	if !passwordIsStrong(password) {
		return domerrors.ErrWeakPassword
	}
	return nil
}

func passwordIsStrong(password string) bool {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			// Characters outside letters/digits/the allowed symbol set
			// disqualify the password outright.
			return false
		}
	}
	return lower && upper && digit && symbol
}
