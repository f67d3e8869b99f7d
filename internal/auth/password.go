// Package auth issues and verifies the credentials the API accepts: bcrypt
// password hashes, HS256 bearer tokens, and a denylist of revoked token IDs.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/smarttrav/internal/domain"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

// HashPassword returns the bcrypt hash of password at the default cost.
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth.HashPassword: %w", err)
	}
	return hash, nil
}

// CheckPassword compares password against hash. A mismatch is reported as
// domain.ErrUnauthorized; any other bcrypt failure is returned wrapped.
func CheckPassword(hash []byte, password string) error {
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("auth.CheckPassword: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return fmt.Errorf("auth.CheckPassword: %w", err)
	}
	return nil
}
