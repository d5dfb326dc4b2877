// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by every access token.
type Claims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IsManager reports whether the token belongs to a manager account.
func (c *Claims) IsManager() bool {
	return c.Role == "manager"
}
