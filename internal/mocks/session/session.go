package session

// Package session contains simple hand-written test doubles for the session
// ports. These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	"github.com/hrsystem/hr-console/internal/domain/auth"
	"github.com/hrsystem/hr-console/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenStore         = (*MemoryTokenStore)(nil)
	_ ports.CredentialVerifier = (*MockVerifier)(nil)
	_ ports.AuthGateway        = (*MockGateway)(nil)
)

// MemoryTokenStore is an in-memory token store with optional error
// injection per operation.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string

	PersistErr error
	ReadErr    error
	ClearErr   error
}

func (s *MemoryTokenStore) Persist(_ context.Context, token string) error {
	if s.PersistErr != nil {
		return s.PersistErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Read(_ context.Context) (string, error) {
	if s.ReadErr != nil {
		return "", s.ReadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Clear(_ context.Context) error {
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Stored returns the currently persisted token.
func (s *MemoryTokenStore) Stored() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// MockVerifier simulates a credential verifier with deterministic claims.
type MockVerifier struct {
	VerifyFunc func(ctx context.Context, rawIDToken string) (auth.FederatedClaims, error)

	DefaultClaims auth.FederatedClaims
}

// NewMockVerifier creates a MockVerifier with sensible defaults.
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{
		DefaultClaims: auth.FederatedClaims{
			Subject: "mock-subject-1",
			Email:   "mock.user@example.com",
			Name:    "Mock User",
		},
	}
}

func (m *MockVerifier) Verify(ctx context.Context, rawIDToken string) (auth.FederatedClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, rawIDToken)
	}
	if rawIDToken == "" {
		return auth.FederatedClaims{}, errors.New("credential is required")
	}
	return m.DefaultClaims, nil
}

// MockGateway simulates the HR API auth surface. Unset funcs return benign
// defaults; call counters record how often each operation ran.
type MockGateway struct {
	LoginFunc             func(ctx context.Context, email, password string) (ports.LoginResult, error)
	RegisterFederatedFunc func(ctx context.Context, claims auth.FederatedClaims) (ports.LoginResult, error)
	RegisterFunc          func(ctx context.Context, in ports.RegisterInput) error
	LogoutFunc            func(ctx context.Context, token string) error
	ProfileFunc           func(ctx context.Context, token string) (auth.Identity, error)

	mu                sync.Mutex
	LoginCalls        int
	RegFederatedCalls int
	RegisterCalls     int
	LogoutCalls       int
	ProfileCalls      int
}

// DefaultIdentity is the identity returned when no funcs are set.
func DefaultIdentity() auth.Identity {
	return auth.Identity{
		ID:          "1",
		DisplayName: "Mock User",
		Email:       "mock.user@example.com",
		Role:        auth.RoleRecruiter,
	}
}

func (m *MockGateway) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	m.count(&m.LoginCalls)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return ports.LoginResult{Token: "mock-token", Identity: DefaultIdentity()}, nil
}

func (m *MockGateway) RegisterFederated(ctx context.Context, claims auth.FederatedClaims) (ports.LoginResult, error) {
	m.count(&m.RegFederatedCalls)
	if m.RegisterFederatedFunc != nil {
		return m.RegisterFederatedFunc(ctx, claims)
	}
	ident := DefaultIdentity()
	ident.Role = auth.RoleCandidate
	ident.Email = claims.Email
	return ports.LoginResult{Token: "mock-federated-token", Identity: ident}, nil
}

func (m *MockGateway) Register(ctx context.Context, in ports.RegisterInput) error {
	m.count(&m.RegisterCalls)
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return nil
}

func (m *MockGateway) Logout(ctx context.Context, token string) error {
	m.count(&m.LogoutCalls)
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockGateway) Profile(ctx context.Context, token string) (auth.Identity, error) {
	m.count(&m.ProfileCalls)
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, token)
	}
	return DefaultIdentity(), nil
}

func (m *MockGateway) count(c *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*c++
}
