package domain

import (
	"slices"
	"time"
)

// RoleAdmin grants access to maintenance endpoints.
const RoleAdmin = "admin"

// User is an account that owns bookmarks and folders.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"password_hash"`
	Roles        []string   `json:"roles,omitempty"`
	AISettings   AISettings `json:"ai_settings"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// AISettings is the per-user provider selection.
type AISettings struct {
	Provider ProviderKind `json:"provider,omitempty"`
	APIKey   string       `json:"api_key,omitempty"`
	Model    string       `json:"model,omitempty"`
}

// Configured reports whether the user supplied their own credential.
func (s AISettings) Configured() bool {
	return s.APIKey != ""
}

// ProviderConfig converts the settings to a provider selection.
func (s AISettings) ProviderConfig() ProviderConfig {
	return ProviderConfig{Provider: s.Provider, APIKey: s.APIKey, Model: s.Model}
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// TokenKind distinguishes access from refresh tokens.
type TokenKind string

// Token kinds.
const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// TokenClaims is the verified content of a token.
type TokenClaims struct {
	Subject   string
	Roles     []string
	TokenID   string
	Kind      TokenKind
	ExpiresAt time.Time
}

// HasRole reports whether the claims carry role.
func (c *TokenClaims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}
