package googleauth

// Package googleauth verifies externally issued Google ID tokens and, for
// interactive use, runs the OAuth2 authorization-code flow that obtains one.
// The console never inspects signatures itself; go-oidc owns verification.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/hrsystem/hr-console/internal/domain/auth"
)

// DefaultIssuer is Google's OIDC issuer.
const DefaultIssuer = "https://accounts.google.com"

// Config holds configuration for the Google verifier.
type Config struct {
	ClientID string
	// IssuerURL overrides the OIDC issuer; defaults to Google's.
	IssuerURL string
	// RedirectURL is required only for the interactive code flow.
	RedirectURL string
	// Scope is a space-separated scope list for the code flow.
	Scope string
	// HTTPClient is optional and defaults to a 30s-timeout client.
	HTTPClient *http.Client
}

// Verifier validates raw ID tokens against the provider's signing keys and
// extracts the claims the HR API registration endpoint expects.
type Verifier struct {
	provider *gooidc.Provider
	verifier *gooidc.IDTokenVerifier
	config   *oauth2.Config
}

// NewVerifier creates a verifier, performing the discovery fetch once.
func NewVerifier(ctx context.Context, cfg Config) (*Verifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	issuer := cfg.IssuerURL
	if issuer == "" {
		issuer = DefaultIssuer
	}
	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	scope := cfg.Scope
	if scope == "" {
		scope = "openid profile email"
	}

	return &Verifier{
		provider: provider,
		verifier: provider.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		config: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURL,
			Scopes:      strings.Fields(scope),
			Endpoint:    provider.Endpoint(),
		},
	}, nil
}

// idTokenClaims is the claim subset forwarded to registration.
type idTokenClaims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verify checks the raw ID token and returns its federated claims.
func (v *Verifier) Verify(ctx context.Context, rawIDToken string) (auth.FederatedClaims, error) {
	if rawIDToken == "" {
		return auth.FederatedClaims{}, errors.New("credential is required")
	}

	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return auth.FederatedClaims{}, fmt.Errorf("verify id token: %w", err)
	}

	var claims idTokenClaims
	if claimsErr := idToken.Claims(&claims); claimsErr != nil {
		return auth.FederatedClaims{}, fmt.Errorf("decode claims: %w", claimsErr)
	}
	if claims.Email == "" {
		return auth.FederatedClaims{}, errors.New("id token carries no email claim")
	}

	return auth.FederatedClaims{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// Begin starts the interactive code flow and returns the provider auth URL
// with freshly generated state and nonce.
func (v *Verifier) Begin(_ context.Context) (authURL, state, nonce string, err error) {
	if v.config.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required for the interactive flow")
	}

	state, err = randomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err = randomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}

	authURL = v.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
	return authURL, state, nonce, nil
}

// Exchange completes the code flow and returns the raw ID token issued by
// the provider, checked against the nonce from Begin.
func (v *Verifier) Exchange(ctx context.Context, code, nonce string) (string, error) {
	if code == "" {
		return "", errors.New("authorization code is required")
	}

	token, err := v.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code for token: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.New("token response carries no id_token")
	}

	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	if nonce != "" && idToken.Nonce != nonce {
		return "", errors.New("nonce mismatch")
	}

	return rawIDToken, nil
}

func randomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
