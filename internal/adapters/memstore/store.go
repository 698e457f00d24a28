package memstore

// Package memstore holds the session token in process memory, the analog of
// tab-scoped browser storage: the token survives navigation within one run
// of the console and is gone when the process exits.

import (
	"context"
	"sync"
)

// TokenStore is an in-process, mutex-guarded single token slot.
// The zero value is ready to use. It has no failure modes.
type TokenStore struct {
	mu    sync.Mutex
	token string
}

// NewTokenStore creates an empty in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

func (s *TokenStore) Persist(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *TokenStore) Read(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *TokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
