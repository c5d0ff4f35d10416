package app

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/id"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
	"github.com/jsamuelsen/bookmark-service/internal/ports"
)

// MaxNameRunes bounds display names.
const MaxNameRunes = 100

// errInvalidCredentials is shared by every login failure so callers cannot
// tell unknown accounts from wrong passwords.
const errInvalidCredentials = "invalid credentials"

// AuthService handles accounts and tokens.
type AuthService struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenIssuer
	revoked ports.RevocationStore
	logger  *slog.Logger
	now     func() time.Time

	// registerMu makes "first user becomes admin" race free.
	registerMu sync.Mutex

	// refreshMu makes refresh token rotation single use.
	refreshMu sync.Mutex
}

// AuthServiceConfig contains the auth service's dependencies.
type AuthServiceConfig struct {
	Users   ports.UserRepository
	Hasher  ports.PasswordHasher
	Tokens  ports.TokenIssuer
	Revoked ports.RevocationStore
	Logger  *slog.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		users:   cfg.Users,
		hasher:  cfg.Hasher,
		tokens:  cfg.Tokens,
		revoked: cfg.Revoked,
		logger:  logger.With(slog.String("component", "app.AuthService")),
		now:     time.Now,
	}
}

// RegisterInput creates an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates an account and signs it in. The first account gets the
// admin role.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, *domain.TokenPair, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, nil, err
	}

	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	if err := checkLength("name", name, MaxNameRunes); err != nil {
		return nil, nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, err
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.createUser(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.Bool("admin", user.HasRole(domain.RoleAdmin)),
	)

	return user, pair, nil
}

func (s *AuthService) createUser(ctx context.Context, user *domain.User) error {
	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	n, err := s.users.Count(ctx)
	if err != nil {
		return err
	}

	if n == 0 {
		user.Roles = []string{domain.RoleAdmin}
	}

	return s.users.Create(ctx, user)
}

// Login exchanges credentials for a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, nil, domain.NewUnauthorizedError(errInvalidCredentials)
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil, domain.NewUnauthorizedError(errInvalidCredentials)
		}

		return nil, nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		logging.FromContextOr(ctx, s.logger).WarnContext(ctx, "login rejected",
			slog.String("user_id", user.ID),
		)

		return nil, nil, domain.NewUnauthorizedError(errInvalidCredentials)
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh rotates a refresh token. Each refresh token works once; the new
// pair carries the user's current roles.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Kind != domain.TokenRefresh {
		return nil, domain.NewUnauthorizedError("not a refresh token")
	}

	if err := s.consumeRefresh(ctx, claims); err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, claims.Subject)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("account no longer exists")
		}

		return nil, err
	}

	return s.issuePair(user)
}

func (s *AuthService) consumeRefresh(ctx context.Context, claims *domain.TokenClaims) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if s.revoked.IsRevoked(ctx, claims.TokenID) {
		logging.FromContextOr(ctx, s.logger).WarnContext(ctx, "refresh token reuse rejected",
			slog.String("user_id", claims.Subject),
		)

		return domain.NewUnauthorizedError("refresh token already used")
	}

	s.revoked.Revoke(ctx, claims.TokenID, claims.ExpiresAt)

	return nil
}

// Logout revokes the access token and, when given, the refresh token. A
// refresh token belonging to someone else is rejected.
func (s *AuthService) Logout(ctx context.Context, access *domain.TokenClaims, refreshToken string) error {
	if refreshToken != "" {
		refresh, err := s.tokens.Verify(refreshToken)
		if err != nil {
			return err
		}

		if refresh.Kind != domain.TokenRefresh || refresh.Subject != access.Subject {
			return domain.NewForbiddenError("logout", "refresh token does not belong to this session")
		}

		s.revoked.Revoke(ctx, refresh.TokenID, refresh.ExpiresAt)
	}

	s.revoked.Revoke(ctx, access.TokenID, access.ExpiresAt)

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "user logged out", slog.String("user_id", access.Subject))

	return nil
}

// Authenticate verifies an access token and checks it was not revoked.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if claims.Kind != domain.TokenAccess {
		return nil, domain.NewUnauthorizedError("not an access token")
	}

	if s.revoked.IsRevoked(ctx, claims.TokenID) {
		return nil, domain.NewUnauthorizedError("token revoked")
	}

	return claims, nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}

// GetAISettings returns the caller's provider settings.
func (s *AuthService) GetAISettings(ctx context.Context, userID string) (domain.AISettings, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.AISettings{}, err
	}

	return user.AISettings, nil
}

// AISettingsInput is a partial update of the provider settings. An empty
// APIKey clears the user's key so the server default applies again.
type AISettingsInput struct {
	Provider *string
	APIKey   *string
	Model    *string
}

// UpdateAISettings changes the caller's provider settings.
func (s *AuthService) UpdateAISettings(ctx context.Context, userID string, in AISettingsInput) (domain.AISettings, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.AISettings{}, err
	}

	settings := user.AISettings

	if in.Provider != nil {
		kind := domain.ProviderKind(strings.ToLower(strings.TrimSpace(*in.Provider)))
		if kind != "" && !kind.Valid() {
			return domain.AISettings{}, domain.NewValidationErrorWithValue("provider", "unsupported provider", *in.Provider)
		}

		settings.Provider = kind
	}

	if in.APIKey != nil {
		settings.APIKey = strings.TrimSpace(*in.APIKey)
	}

	if in.Model != nil {
		settings.Model = strings.TrimSpace(*in.Model)
	}

	user.AISettings = settings
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return domain.AISettings{}, err
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "ai settings updated",
		slog.String("user_id", userID),
		slog.String("provider", string(settings.Provider)),
		slog.Bool("own_key", settings.Configured()),
	)

	return settings, nil
}

func (s *AuthService) issuePair(user *domain.User) (*domain.TokenPair, error) {
	access, accessClaims, err := s.tokens.Issue(user.ID, user.Roles, domain.TokenAccess)
	if err != nil {
		return nil, err
	}

	refresh, refreshClaims, err := s.tokens.Issue(user.ID, user.Roles, domain.TokenRefresh)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		TokenType:        "Bearer",
		AccessExpiresAt:  accessClaims.ExpiresAt,
		RefreshExpiresAt: refreshClaims.ExpiresAt,
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.NewValidationError("email", "is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.NewValidationErrorWithValue("email", "is not a valid address", raw)
	}

	return email, nil
}
