// Package auth provides authentication and authorization functionality.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// bcryptCost matches the cost factor the platform has always used;
	// existing stored hashes were produced with it.
	bcryptCost = 10

	// bcrypt silently truncates beyond 72 bytes; reject instead.
	maxPasswordLength = 72
)

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordLength {
		return "", errors.New("password exceeds maximum length")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a bcrypt hash.
// Returns false (not an error) for a mismatch or an undecodable hash,
// so callers can't distinguish the two.
func VerifyPassword(hash, password string) bool {
	if len(password) > maxPasswordLength {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
