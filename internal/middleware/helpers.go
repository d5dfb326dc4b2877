// internal/middleware/helpers.go
package middleware

import (
	"alamin-service/internal/domain/user"

	"github.com/gin-gonic/gin"
)

// ActorFrom rebuilds the authenticated actor from the request context.
func ActorFrom(c *gin.Context) (user.Actor, bool) {
	username, exists := c.Get("username")
	if !exists {
		return user.Actor{}, false
	}

	name, _ := c.Get("name")
	role, _ := c.Get("role")

	actor := user.Actor{}
	if s, ok := username.(string); ok {
		actor.Username = s
	}
	if s, ok := name.(string); ok {
		actor.Name = s
	}
	if r, ok := role.(user.Role); ok {
		actor.Role = r
	}
	return actor, actor.Username != ""
}

// MustGetActor gets the actor from context or panics. Handlers behind Auth()
// may use it freely.
func MustGetActor(c *gin.Context) user.Actor {
	actor, ok := ActorFrom(c)
	if !ok {
		panic("actor not found in context")
	}
	return actor
}

// GetJTI returns the token identifier attached by Auth().
func GetJTI(c *gin.Context) (string, bool) {
	jti, exists := c.Get("jti")
	if !exists {
		return "", false
	}
	s, ok := jti.(string)
	return s, ok && s != ""
}

// IsAuthenticated checks if the request carries a verified identity.
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("username")
	return exists
}
