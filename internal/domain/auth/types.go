package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of transport/adapter concerns.

import "fmt"

// Role represents an application authorization role.
// Keep string form for easy persistence and wire transfer.
type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

// ParseRole validates a wire-level role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleRecruiter, RoleCandidate:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Session is the client-held authentication state: one opaque bearer token.
// The zero value means "not logged in".
type Session struct {
	Token string
}

// Present reports whether the session holds a token.
func (s Session) Present() bool { return s.Token != "" }

// Identity is the normalized profile of the authenticated user.
// It is only trusted while the session token that produced it is current.
type Identity struct {
	ID             string
	DisplayName    string
	Email          string
	Role           Role
	ProfilePicture string
}

// FederatedClaims are the fields decoded from an externally issued identity
// token (e.g. a Google ID token). The console never mints these itself; it
// verifies and forwards them to the registration endpoint.
type FederatedClaims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}
