// Package auth provides authentication and authorization functionality.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt cost factor used when hashing new passwords.
	DefaultCost = 10

	// Prevent DoS from massive passwords consuming CPU during hashing.
	// bcrypt ignores input past 72 bytes anyway, so nothing legitimate is lost.
	maxPasswordLength = 1024
)

// HashPassword creates a bcrypt hash of the password at DefaultCost.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordLength {
		return "", errors.New("password exceeds maximum length")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored bcrypt hash.
// bcrypt's comparison is constant time for matching-length digests.
// Fails closed: any error (malformed hash, empty hash, oversized input)
// is reported as a non-match, never surfaced to the caller.
func VerifyPassword(storedHash, password string) bool {
	if storedHash == "" || len(password) > maxPasswordLength {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
