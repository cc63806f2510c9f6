// Package domain contains the core entity types for the BookHaven catalog.
package domain

import "time"

// User is a registered account. PasswordHash is empty for accounts created
// through legacy username-only registration; such accounts cannot log in
// until a password is set.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role,omitempty"` // empty means unassigned; treated as RoleUser
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
