package model

import "time"

// Role is the authorization role carried by a principal.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role name.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// User represents a registered storefront customer.
type User struct {
	ID            int64
	Email         string
	Name          string
	PasswordHash  string
	Role          Role
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Admin is a back-office operator. Admins live in their own table and never share sessions with users.
type Admin struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}

// Session binds an opaque token to a subject until ExpiresAt.
type Session struct {
	Token     string
	SubjectID int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// OAuthIdentity is the subset of a provider profile used to sign a customer in.
type OAuthIdentity struct {
	Provider string
	Email    string
	Name     string
}
