// internal/middleware/auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"alamin-service/internal/domain/user"
	"alamin-service/internal/pkg/response"
	"alamin-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	authService *auth.AuthService
}

func NewAuthMiddleware(authService *auth.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Auth validates the bearer token and attaches the actor to the request.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		c.Set("username", claims.Username)
		c.Set("name", claims.Name)
		c.Set("role", user.Role(claims.Role))
		c.Set("jti", claims.ID)

		c.Next()
	}
}

// ManagerOnly rejects non-manager actors. MUST be used after Auth().
func (m *AuthMiddleware) ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			response.Error(c, http.StatusForbidden, "authentication required", nil)
			return
		}
		if !actor.IsManager() {
			response.Error(c, http.StatusForbidden, "manager role required", nil)
			return
		}
		c.Next()
	}
}

// extractToken pulls the token from the Authorization header, or from the
// query string for websocket upgrades where browsers cannot set headers.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return c.Query("token")
}
