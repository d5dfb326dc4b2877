// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// User is a staff account. Usernames are unique case-insensitively.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Actor is the authenticated identity attached to every request.
type Actor struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

func (a Actor) IsManager() bool {
	return a.Role == RoleManager
}

// SameUsername compares usernames the way the store does: case-insensitively.
func SameUsername(a, b string) bool {
	return strings.EqualFold(a, b)
}
