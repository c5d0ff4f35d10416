package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// MinPasswordLength is the shortest password Hash accepts.
const MinPasswordLength = 8

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

// BcryptHasher implements ports.PasswordHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when
// cost is zero.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &BcryptHasher{cost: cost}
}

// Hash validates and hashes password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", domain.NewValidationError("password",
			fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}

	if len(password) > maxPasswordBytes {
		return "", domain.NewValidationError("password",
			fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// Compare returns domain.ErrUnauthorized when password does not match hash.
func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.NewUnauthorizedError("invalid credentials")
	}

	return fmt.Errorf("comparing password: %w", err)
}
