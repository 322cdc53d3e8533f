package domain

import (
	"strings"
	"time"
)

// Role is a named permission marker such as "ROLE_Admin". Administrators can
// create new roles at runtime, so this is an open set.
type Role string

const (
	RoleUser  Role = "ROLE_User"
	RoleAdmin Role = "ROLE_Admin"

	RolePrefix = "ROLE_"
)

// Valid reports whether the role name carries the ROLE_ prefix and a non-empty suffix.
func (r Role) Valid() bool {
	return strings.HasPrefix(string(r), RolePrefix) && len(r) > len(RolePrefix)
}

// User is a stored credential record.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user already holds role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleNames returns the user's roles as plain strings, in stored order.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return names
}
