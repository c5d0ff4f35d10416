package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// minSecretBytes matches the HS256 key size.
const minSecretBytes = 32

// IssuerConfig configures a JWTIssuer.
type IssuerConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// claims is the JWT payload.
type claims struct {
	Roles []string         `json:"roles,omitempty"`
	Type  domain.TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 tokens. It implements ports.TokenIssuer.
type JWTIssuer struct {
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTIssuer validates cfg and builds an issuer.
func NewJWTIssuer(cfg IssuerConfig) (*JWTIssuer, error) {
	if len(cfg.Secret) < minSecretBytes {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretBytes)
	}

	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("jwt issuer and audience are required")
	}

	return &JWTIssuer{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}, nil
}

// RefreshTTL is the lifetime of refresh tokens, the longest any token lives.
func (i *JWTIssuer) RefreshTTL() time.Duration {
	return i.refreshTTL
}

// Issue signs a token of kind for userID.
func (i *JWTIssuer) Issue(userID string, roles []string, kind domain.TokenKind) (string, *domain.TokenClaims, error) {
	ttl := i.accessTTL
	if kind == domain.TokenRefresh {
		ttl = i.refreshTTL
	}

	now := i.now()
	c := claims{
		Roles: roles,
		Type:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing %s token: %w", kind, err)
	}

	return signed, c.domain(), nil
}

// Verify parses token and checks its signature, lifetime, issuer and
// audience. Every failure is reported as domain.ErrUnauthorized.
func (i *JWTIssuer) Verify(token string) (*domain.TokenClaims, error) {
	var c claims

	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, domain.NewUnauthorizedError(tokenFailure(err))
	}

	if !c.VerifyIssuer(i.issuer, true) {
		return nil, domain.NewUnauthorizedError("token issuer mismatch")
	}

	if !c.VerifyAudience(i.audience, true) {
		return nil, domain.NewUnauthorizedError("token audience mismatch")
	}

	if c.Subject == "" || c.ID == "" {
		return nil, domain.NewUnauthorizedError("token is missing required claims")
	}

	if c.Type != domain.TokenAccess && c.Type != domain.TokenRefresh {
		return nil, domain.NewUnauthorizedError("unknown token type")
	}

	return c.domain(), nil
}

func (c claims) domain() *domain.TokenClaims {
	out := &domain.TokenClaims{
		Subject: c.Subject,
		Roles:   c.Roles,
		TokenID: c.ID,
		Kind:    c.Type,
	}

	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}

	return out
}

func tokenFailure(err error) string {
	var verr *jwt.ValidationError
	if errors.As(err, &verr) {
		switch {
		case verr.Errors&jwt.ValidationErrorExpired != 0:
			return "token expired"
		case verr.Errors&jwt.ValidationErrorSignatureInvalid != 0:
			return "token signature invalid"
		case verr.Errors&jwt.ValidationErrorMalformed != 0:
			return "token malformed"
		}
	}

	return "token invalid"
}
