// Package auth implements password hashing, credential format rules,
// registration/login against the credential store, and the session tokens
// the HTTP layer hands out.
package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted bcrypt hash. The salt is generated per
// call and embedded in the output, so verification needs no separate salt
// storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateUsername checks the username format: non-empty, alphanumeric
// only, 3-20 characters. The first failing rule's message is returned, in
// that order.
func ValidateUsername(username string) (bool, string) {
	if username == "" {
		return false, "Username cannot be empty"
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false, "Username must be letters and numbers only"
		}
	}
	if n := len([]rune(username)); n < 3 || n > 20 {
		return false, "Username must be 3-20 characters"
	}
	return true, ""
}

// ValidatePassword checks password strength: 6-72 characters with an
// uppercase letter, a lowercase letter, and a digit. First failure wins.
// The upper bound is bcrypt's input limit; without it a format-valid long
// password would pass validation and then fail to hash.
func ValidatePassword(password string) (bool, string) {
	if len([]rune(password)) < 6 {
		return false, "Password must be at least 6 characters"
	}
	if len(password) > 72 {
		return false, "Password must be at most 72 characters"
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return false, "Password must have an uppercase letter"
	}
	if !hasLower {
		return false, "Password must have a lowercase letter"
	}
	if !hasDigit {
		return false, "Password must have a number"
	}
	return true, ""
}
