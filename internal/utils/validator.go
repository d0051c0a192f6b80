package utils

import (
	"regexp"
	"strings"
	"unicode"
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword validates a password
// Minimum 6 characters, at least one uppercase letter, one lowercase letter, one digit
func ValidatePassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}

// SanitizeEmail trims an email address. Casing is kept; lookups compare case-insensitively.
func SanitizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// SanitizeTitle trims surrounding whitespace from a course or lesson title
func SanitizeTitle(title string) string {
	return strings.TrimSpace(title)
}
