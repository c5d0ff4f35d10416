package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns domain.ErrUnauthorized when password does not match hash.
	Compare(hash, password string) error
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(userID string, roles []string, kind domain.TokenKind) (string, *domain.TokenClaims, error)

	// Verify returns domain.ErrUnauthorized for malformed, expired or foreign tokens.
	Verify(token string) (*domain.TokenClaims, error)
}

// RevocationStore remembers revoked token ids until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time)
	IsRevoked(ctx context.Context, tokenID string) bool
}
