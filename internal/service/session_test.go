package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrsystem/hr-console/internal/domain/auth"
	mocksession "github.com/hrsystem/hr-console/internal/mocks/session"
	"github.com/hrsystem/hr-console/internal/ports"
)

// newSessionService wires a service against in-memory doubles.
func newSessionService(t *testing.T) (*mocksession.MemoryTokenStore, *mocksession.MockGateway, *SessionService) {
	t.Helper()

	store := &mocksession.MemoryTokenStore{}
	gateway := &mocksession.MockGateway{}

	svc, err := NewSessionService(SessionServiceOptions{
		Store:    store,
		Gateway:  gateway,
		Verifier: mocksession.NewMockVerifier(),
	})
	require.NoError(t, err)

	return store, gateway, svc
}

func TestNewSessionService_MissingDeps(t *testing.T) {
	t.Parallel()

	_, err := NewSessionService(SessionServiceOptions{Gateway: &mocksession.MockGateway{}})
	require.Error(t, err)

	_, err = NewSessionService(SessionServiceOptions{Store: &mocksession.MemoryTokenStore{}})
	require.Error(t, err)
}

func TestSessionService_Login_Success(t *testing.T) {
	t.Parallel()
	store, gateway, svc := newSessionService(t)

	ctx := context.Background()
	gateway.LoginFunc = func(_ context.Context, email, password string) (ports.LoginResult, error) {
		assert.Equal(t, "reclutador@example.com", email)
		assert.Equal(t, "secret", password)
		return ports.LoginResult{Token: "T1", Identity: mocksession.DefaultIdentity()}, nil
	}

	require.NoError(t, svc.Login(ctx, "reclutador@example.com", "secret"))

	snap := svc.Current()
	assert.True(t, snap.LoggedIn())
	assert.Equal(t, PhaseSettled, snap.Phase)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, auth.RoleRecruiter, snap.Identity.Role)
	assert.Equal(t, "T1", svc.Token())
	assert.Equal(t, "T1", store.Stored())
}

func TestSessionService_Login_GatewayFailure(t *testing.T) {
	t.Parallel()
	store, gateway, svc := newSessionService(t)

	gateway.LoginFunc = func(context.Context, string, string) (ports.LoginResult, error) {
		return ports.LoginResult{}, errors.New("login: bad credentials")
	}

	err := svc.Login(context.Background(), "a@b.c", "nope")
	require.Error(t, err)

	assert.False(t, svc.Current().LoggedIn())
	assert.Empty(t, store.Stored())
}

func TestSessionService_Login_PersistFailure(t *testing.T) {
	t.Parallel()
	store, _, svc := newSessionService(t)
	store.PersistErr = errors.New("store unavailable")

	err := svc.Login(context.Background(), "a@b.c", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist token")
}

func TestSessionService_Resume_Success(t *testing.T) {
	t.Parallel()
	store, gateway, svc := newSessionService(t)

	require.NoError(t, store.Persist(context.Background(), "stored-token"))
	gateway.ProfileFunc = func(_ context.Context, token string) (auth.Identity, error) {
		assert.Equal(t, "stored-token", token)
		return mocksession.DefaultIdentity(), nil
	}

	require.NoError(t, svc.Resume(context.Background()))

	snap := svc.Current()
	assert.True(t, snap.LoggedIn())
	assert.Equal(t, PhaseSettled, snap.Phase)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "Mock User", snap.Identity.DisplayName)
	assert.Equal(t, 1, gateway.ProfileCalls)
}

func TestSessionService_Resume_NoStoredToken(t *testing.T) {
	t.Parallel()
	_, gateway, svc := newSessionService(t)

	require.NoError(t, svc.Resume(context.Background()))

	snap := svc.Current()
	assert.False(t, snap.LoggedIn())
	assert.Equal(t, PhaseSettled, snap.Phase)
	assert.Equal(t, 0, gateway.ProfileCalls)
}

// A stored token that fails to resolve must leave the console logged out
// with the token cleared, not in a half-resolved state.
func TestSessionService_Resume_ProfileFailureTearsDown(t *testing.T) {
	t.Parallel()
	store, gateway, svc := newSessionService(t)

	require.NoError(t, store.Persist(context.Background(), "expired-token"))
	gateway.ProfileFunc = func(context.Context, string) (auth.Identity, error) {
		return auth.Identity{}, errors.New("fetch profile: 401")
	}

	err := svc.Resume(context.Background())
	require.Error(t, err)

	snap := svc.Current()
	assert.False(t, snap.LoggedIn())
	assert.Nil(t, snap.Identity)
	assert.Equal(t, PhaseSettled, snap.Phase)
	assert.Empty(t, store.Stored())
	assert.Empty(t, svc.Token())
}

func TestSessionService_LoginFederated_Success(t *testing.T) {
	t.Parallel()
	store, gateway, svc := newSessionService(t)

	gateway.RegisterFederatedFunc = func(_ context.Context, claims auth.FederatedClaims) (ports.LoginResult, error) {
		assert.Equal(t, "mock.user@example.com", claims.Email)
		ident := mocksession.DefaultIdentity()
		ident.Role = auth.RoleCandidate
		return ports.LoginResult{Token: "fed-token", Identity: ident}, nil
	}

	require.NoError(t, svc.LoginFederated(context.Background(), "raw-id-token"))

	snap := svc.Current()
	require.NotNil(t, snap.Identity)
	assert.Equal(t, auth.RoleCandidate, snap.Identity.Role)
	assert.Equal(t, "fed-token", store.Stored())
}

// Verification failure is local: the HR API must never see an unverified
// credential.
func TestSessionService_LoginFederated_VerifyFailureSkipsGateway(t *testing.T) {
	t.Parallel()
	_, gateway, svc := newSessionService(t)

	err := svc.LoginFederated(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify credential")
	assert.Equal(t, 0, gateway.RegFederatedCalls)
	assert.False(t, svc.Current().LoggedIn())
}

func TestSessionService_LoginFederated_NoVerifier(t *testing.T) {
	t.Parallel()

	svc, err := NewSessionService(SessionServiceOptions{
		Store:   &mocksession.MemoryTokenStore{},
		Gateway: &mocksession.MockGateway{},
	})
	require.NoError(t, err)

	require.Error(t, svc.LoginFederated(context.Background(), "raw"))
}

// Registration creates the account and nothing else; the user logs in with
// the new credentials afterwards.
func TestSessionService_Register_NeverEstablishesSession(t *testing.T) {
	t.Parallel()
	store, gateway, svc := newSessionService(t)

	in := ports.RegisterInput{
		Email:    "new@example.com",
		Password: "secret",
		Username: "newbie",
		Role:     auth.RoleCandidate,
	}
	require.NoError(t, svc.Register(context.Background(), in))

	assert.Equal(t, 1, gateway.RegisterCalls)
	assert.Empty(t, store.Stored())
	assert.False(t, svc.Current().LoggedIn())
}

func TestSessionService_Logout_ClearsStateAndStore(t *testing.T) {
	t.Parallel()
	store, gateway, svc := newSessionService(t)

	ctx := context.Background()
	require.NoError(t, svc.Login(ctx, "a@b.c", "secret"))
	require.NotEmpty(t, store.Stored())

	svc.Logout(ctx)

	assert.False(t, svc.Current().LoggedIn())
	assert.Empty(t, store.Stored())
	assert.Equal(t, 1, gateway.LogoutCalls)
}

// Remote logout failure still tears the local session down.
func TestSessionService_Logout_RemoteFailureStillTearsDown(t *testing.T) {
	t.Parallel()
	store, gateway, svc := newSessionService(t)

	ctx := context.Background()
	require.NoError(t, svc.Login(ctx, "a@b.c", "secret"))
	gateway.LogoutFunc = func(context.Context, string) error {
		return errors.New("logout: 500")
	}

	svc.Logout(ctx)

	assert.False(t, svc.Current().LoggedIn())
	assert.Empty(t, store.Stored())
}

// Logging out while logged out is a no-op and never hits the remote API.
func TestSessionService_Logout_Idempotent(t *testing.T) {
	t.Parallel()
	_, gateway, svc := newSessionService(t)

	ctx := context.Background()
	svc.Logout(ctx)
	svc.Logout(ctx)

	assert.Equal(t, 0, gateway.LogoutCalls)
	assert.False(t, svc.Current().LoggedIn())
}

func TestSessionService_Subscribe_NotifiedOnChanges(t *testing.T) {
	t.Parallel()
	_, _, svc := newSessionService(t)

	var seen []Snapshot
	svc.Subscribe(func(snap Snapshot) { seen = append(seen, snap) })

	ctx := context.Background()
	require.NoError(t, svc.Login(ctx, "a@b.c", "secret"))
	svc.Logout(ctx)

	require.Len(t, seen, 2)
	assert.True(t, seen[0].LoggedIn())
	assert.False(t, seen[1].LoggedIn())
	assert.Equal(t, PhaseSettled, seen[1].Phase)
}

// Snapshots are copies: mutating a returned identity must not leak into the
// service state.
func TestSessionService_Current_ReturnsCopy(t *testing.T) {
	t.Parallel()
	_, _, svc := newSessionService(t)

	require.NoError(t, svc.Login(context.Background(), "a@b.c", "secret"))

	snap := svc.Current()
	require.NotNil(t, snap.Identity)
	snap.Identity.DisplayName = "mutated"

	assert.Equal(t, "Mock User", svc.Current().Identity.DisplayName)
}
