package service

// Package service orchestrates the process-wide session: token acquisition,
// persistence, identity resolution, and teardown. It is the only writer of
// session state; screens and the access controller read snapshots and
// subscribe to changes.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hrsystem/hr-console/internal/domain/auth"
	"github.com/hrsystem/hr-console/internal/ports"
)

// Phase tracks where session resolution stands. Route decisions stay neutral
// until the phase settles.
type Phase int

const (
	// PhaseUnresolved means Resume has not run yet.
	PhaseUnresolved Phase = iota
	// PhaseResolving means an identity fetch is in flight.
	PhaseResolving
	// PhaseSettled means the session is in a known state, logged in or not.
	PhaseSettled
)

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	Session  auth.Session
	Identity *auth.Identity
	Phase    Phase
}

// LoggedIn reports whether the snapshot holds an authenticated session.
func (s Snapshot) LoggedIn() bool { return s.Session.Present() }

// SessionService owns the singleton session and identity. An unresolvable
// identity is treated as "not logged in", never as "temporarily unknown".
type SessionService struct {
	store    ports.TokenStore
	gateway  ports.AuthGateway
	verifier ports.CredentialVerifier
	logger   *slog.Logger

	group singleflight.Group

	mu       sync.Mutex
	token    string
	identity *auth.Identity
	phase    Phase
	subs     []func(Snapshot)
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Store    ports.TokenStore
	Gateway  ports.AuthGateway
	Verifier ports.CredentialVerifier
	Logger   *slog.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(opts SessionServiceOptions) (*SessionService, error) {
	if opts.Store == nil {
		return nil, errors.New("token store is required")
	}
	if opts.Gateway == nil {
		return nil, errors.New("auth gateway is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SessionService{
		store:    opts.Store,
		gateway:  opts.Gateway,
		verifier: opts.Verifier,
		logger:   logger,
	}, nil
}

// Current returns a snapshot of the session state.
func (s *SessionService) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Token implements the resource client's token source.
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Subscribe registers fn to run after every session state change. fn is
// called outside the service lock.
func (s *SessionService) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Resume attempts silent resumption from the stored token. Called once at
// process start. A stored token that fails to resolve ends with the session
// fully torn down.
func (s *SessionService) Resume(ctx context.Context) error {
	token, err := s.store.Read(ctx)
	if err != nil {
		s.settle("", nil)
		return fmt.Errorf("read stored token: %w", err)
	}
	if token == "" {
		s.settle("", nil)
		return nil
	}

	s.setResolving(token)

	ident, err := s.resolve(ctx, token)
	if err != nil {
		s.logger.Warn("session resume failed, logging out", slog.Any("error", err))
		s.teardown(ctx)
		return fmt.Errorf("resume session: %w", err)
	}

	s.settle(token, &ident)
	s.logger.Info("session resumed", slog.String("role", string(ident.Role)))
	return nil
}

// Login exchanges local credentials for a session.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	res, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, res)
}

// LoginFederated verifies an externally issued identity token and forwards
// its claims to the registration endpoint. Verification failure is a local
// failure; the HR API is never contacted with an unverified credential.
func (s *SessionService) LoginFederated(ctx context.Context, rawIDToken string) error {
	if s.verifier == nil {
		return errors.New("federated login is not configured")
	}
	claims, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return fmt.Errorf("verify credential: %w", err)
	}

	res, err := s.gateway.RegisterFederated(ctx, claims)
	if err != nil {
		return err
	}
	return s.establish(ctx, res)
}

// Register creates a local account. It never persists a token; the user
// logs in with the new credentials afterwards.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.gateway.Register(ctx, in)
}

// Logout invalidates the session remotely (best effort) and always clears
// local state. Logging out while logged out is a no-op.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token != "" {
		if err := s.gateway.Logout(ctx, token); err != nil {
			s.logger.Warn("remote logout failed", slog.Any("error", err))
		}
	}
	s.teardown(ctx)
}

// establish persists the token and publishes the logged-in state.
func (s *SessionService) establish(ctx context.Context, res ports.LoginResult) error {
	if err := s.store.Persist(ctx, res.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	ident := res.Identity
	s.settle(res.Token, &ident)
	s.logger.Info("session established", slog.String("role", string(ident.Role)))
	return nil
}

// resolve fetches the identity for token, collapsed to at most one in-flight
// fetch per token.
func (s *SessionService) resolve(ctx context.Context, token string) (auth.Identity, error) {
	v, err, _ := s.group.Do(token, func() (any, error) {
		return s.gateway.Profile(ctx, token)
	})
	if err != nil {
		return auth.Identity{}, err
	}
	ident, ok := v.(auth.Identity)
	if !ok {
		return auth.Identity{}, errors.New("unexpected profile result type")
	}
	return ident, nil
}

// teardown clears the stored token and resets the session to logged out.
func (s *SessionService) teardown(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("clear stored token failed", slog.Any("error", err))
	}
	s.settle("", nil)
}

func (s *SessionService) setResolving(token string) {
	s.mu.Lock()
	s.token = token
	s.identity = nil
	s.phase = PhaseResolving
	snap := s.snapshotLocked()
	subs := append([]func(Snapshot){}, s.subs...)
	s.mu.Unlock()
	notify(subs, snap)
}

func (s *SessionService) settle(token string, ident *auth.Identity) {
	s.mu.Lock()
	s.token = token
	s.identity = ident
	s.phase = PhaseSettled
	snap := s.snapshotLocked()
	subs := append([]func(Snapshot){}, s.subs...)
	s.mu.Unlock()
	notify(subs, snap)
}

func (s *SessionService) snapshotLocked() Snapshot {
	snap := Snapshot{
		Session: auth.Session{Token: s.token},
		Phase:   s.phase,
	}
	if s.identity != nil {
		ident := *s.identity
		snap.Identity = &ident
	}
	return snap
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
