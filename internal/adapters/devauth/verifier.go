package devauth

// Package devauth provides a simple, config-driven CredentialVerifier for
// local development. It accepts any non-empty credential and returns the
// configured identity claims.

import (
	"context"
	"errors"

	"github.com/hrsystem/hr-console/internal/domain/auth"
)

// Config controls the dev verifier behavior. Email is required.
type Config struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Verifier implements ports.CredentialVerifier for local development.
type Verifier struct {
	claims auth.FederatedClaims
}

// NewVerifier constructs a dev verifier from Config.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	subject := cfg.Subject
	if subject == "" {
		subject = "dev-subject"
	}
	return &Verifier{
		claims: auth.FederatedClaims{
			Subject: subject,
			Email:   cfg.Email,
			Name:    cfg.Name,
			Picture: cfg.Picture,
		},
	}, nil
}

// Verify ignores the credential contents; an empty credential is still
// rejected so callers exercise the same contract as the real verifier.
func (v *Verifier) Verify(_ context.Context, rawIDToken string) (auth.FederatedClaims, error) {
	if rawIDToken == "" {
		return auth.FederatedClaims{}, errors.New("credential is required")
	}
	return v.claims, nil
}
