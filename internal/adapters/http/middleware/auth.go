package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
)

// ContextKeyClaims is the gin context key for storing verified claims.
const ContextKeyClaims = "claims"

const bearerPrefix = "bearer "

// Authenticator verifies an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// BearerToken returns the token from an "Authorization: Bearer ..." header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}

// GetClaims retrieves claims from the gin context.
// Returns nil if the request was not authenticated.
func GetClaims(c *gin.Context) *domain.TokenClaims {
	if claims, exists := c.Get(ContextKeyClaims); exists {
		if cl, ok := claims.(*domain.TokenClaims); ok {
			return cl
		}
	}

	return nil
}

// RequireAuth returns middleware that rejects requests without a valid
// access token. The verified claims are stored for handlers and the request
// logger gains the caller's user id.
func RequireAuth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			dto.AbortWithCode(c, dto.ErrorCodeUnauthorized, "bearer token required")
			return
		}

		ctx := c.Request.Context()

		claims, err := authn.Authenticate(ctx, token)
		if err != nil {
			dto.AbortWithError(c, err)
			return
		}

		c.Set(ContextKeyClaims, claims)

		c.Request = c.Request.WithContext(logging.WithUserID(ctx, claims.Subject))

		c.Next()
	}
}

// RequireRole returns middleware that requires a specific role. It must run
// after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			dto.AbortWithCode(c, dto.ErrorCodeUnauthorized, "authentication required")
			return
		}

		if !claims.HasRole(role) {
			dto.AbortWithCode(c, dto.ErrorCodeForbidden, "insufficient permissions: role "+role+" required")
			return
		}

		c.Next()
	}
}
