package ports

// Package ports defines interfaces (hexagonal ports) for the console's
// session machinery. Implementations live in internal/adapters and
// internal/api; orchestration in internal/service.

import (
	"context"

	"github.com/hrsystem/hr-console/internal/domain/auth"
)

// TokenStore persists the single session token for the lifetime the adapter
// provides (in-process for the memory store, across restarts for redis).
// Read returns the empty string when no token is stored; absence is not an
// error.
type TokenStore interface {
	Persist(ctx context.Context, token string) error
	Read(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// CredentialVerifier checks an externally issued identity token and returns
// the claims the console forwards to the registration endpoint. The signing
// internals belong to the identity provider; this port only decodes.
type CredentialVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (auth.FederatedClaims, error)
}

// LoginResult carries the outcome of a successful credential exchange with
// the HR API: the bearer token and the identity normalized from the same
// response payload.
type LoginResult struct {
	Token    string
	Identity auth.Identity
}

// RegisterInput groups parameters for local registration.
type RegisterInput struct {
	Email             string
	Password          string
	Username          string
	Role              auth.Role
	VerificationToken string
}

// AuthGateway is the authentication surface of the remote HR API.
type AuthGateway interface {
	// Login exchanges local credentials for a session token.
	Login(ctx context.Context, email, password string) (LoginResult, error)

	// RegisterFederated registers-or-logs-in a federated identity and
	// returns a session token for it.
	RegisterFederated(ctx context.Context, claims auth.FederatedClaims) (LoginResult, error)

	// Register creates a local account. It does not produce a token; the
	// user logs in with the new credentials afterwards.
	Register(ctx context.Context, in RegisterInput) error

	// Logout invalidates the token server-side.
	Logout(ctx context.Context, token string) error

	// Profile resolves a token into the identity it belongs to.
	Profile(ctx context.Context, token string) (auth.Identity, error)
}
