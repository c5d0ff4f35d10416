package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/bookmark-service/internal/app"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// AuthHandler handles account, session and settings endpoints.
type AuthHandler struct {
	service *app.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service *app.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token. It is the body of both
// POST /auth/refresh and POST /auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AISettingsRequest is a partial update of the caller's provider settings.
type AISettingsRequest struct {
	Provider *string `json:"provider" validate:"omitempty,max=32"`
	APIKey   *string `json:"apiKey" validate:"omitempty,max=512"`
	Model    *string `json:"model" validate:"omitempty,max=128"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenResponse is an issued token pair.
type TokenResponse struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	TokenType        string    `json:"tokenType"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	User   *UserResponse  `json:"user"`
	Tokens *TokenResponse `json:"tokens"`
}

// AISettingsResponse shows the provider settings. The key is never echoed
// back in full.
type AISettingsResponse struct {
	Provider     string `json:"provider,omitempty"`
	Model        string `json:"model,omitempty"`
	APIKey       string `json:"apiKey,omitempty"`
	HasOwnAPIKey bool   `json:"hasOwnApiKey"`
}

func toUserResponse(u *domain.User) *UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}

	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
	}
}

func toTokenResponse(p *domain.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:      p.AccessToken,
		RefreshToken:     p.RefreshToken,
		TokenType:        p.TokenType,
		AccessExpiresAt:  p.AccessExpiresAt,
		RefreshExpiresAt: p.RefreshExpiresAt,
	}
}

func toAISettingsResponse(s domain.AISettings) *AISettingsResponse {
	return &AISettingsResponse{
		Provider:     string(s.Provider),
		Model:        s.Model,
		APIKey:       MaskAPIKey(s.APIKey),
		HasOwnAPIKey: s.Configured(),
	}
}

// MaskAPIKey keeps the last four characters of key. Short keys are hidden
// completely.
func MaskAPIKey(key string) string {
	const visible = 4

	if key == "" {
		return ""
	}

	if len(key) <= 2*visible {
		return strings.Repeat("*", len(key))
	}

	return strings.Repeat("*", len(key)-visible) + key[len(key)-visible:]
}

// currentUser returns the authenticated caller. It writes a 401 and returns
// false when the route was reached without RequireAuth.
func currentUser(c *gin.Context) (*domain.TokenClaims, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.ErrorCodeUnauthorized,
			"authentication required",
		).WithTraceID(dto.GetTraceID(c)))

		return nil, false
	}

	return claims, true
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	user, tokens, err := h.service.Register(c.Request.Context(), app.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, &SessionResponse{User: toUserResponse(user), Tokens: toTokenResponse(tokens)})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	user, tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, &SessionResponse{User: toUserResponse(user), Tokens: toTokenResponse(tokens)})
}

// Refresh handles POST /api/v1/auth/refresh. Each refresh token works once.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTokenResponse(tokens))
}

// Logout handles POST /api/v1/auth/logout, revoking the presented access
// token and the refresh token in the body.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req RefreshRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims, req.RefreshToken); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me handles GET /api/v1/me.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.service.Me(c.Request.Context(), claims.Subject)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// GetAISettings handles GET /api/v1/me/ai-settings.
func (h *AuthHandler) GetAISettings(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	settings, err := h.service.GetAISettings(c.Request.Context(), claims.Subject)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAISettingsResponse(settings))
}

// UpdateAISettings handles PUT /api/v1/me/ai-settings.
func (h *AuthHandler) UpdateAISettings(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req AISettingsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	settings, err := h.service.UpdateAISettings(c.Request.Context(), claims.Subject, app.AISettingsInput{
		Provider: req.Provider,
		APIKey:   req.APIKey,
		Model:    req.Model,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAISettingsResponse(settings))
}

// RegisterPublicRoutes registers the routes that issue tokens.
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
}

// RegisterAuthRoutes registers the routes that need an access token.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.Logout)

	me := rg.Group("/me")
	me.GET("", h.Me)
	me.GET("/ai-settings", h.GetAISettings)
	me.PUT("/ai-settings", h.UpdateAISettings)
}
