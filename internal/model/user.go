package model

import (
	"strings"
	"time"
)

// User is one row of the credential store.
type User struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Roles        []string
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RolesString renders roles as the comma-separated form stored in the
// database.
func (u *User) RolesString() string {
	return strings.Join(u.Roles, ",")
}

// ParseRoles splits a comma-separated roles string, dropping empty entries.
func ParseRoles(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
