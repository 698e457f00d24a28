package config

import (
	"fmt"
	"strings"
)

// AuthMode selects how federated credentials are verified.
type AuthMode string

const (
	// AuthModeGoogle verifies Google-issued ID tokens via OIDC discovery.
	AuthModeGoogle AuthMode = "google"
	// AuthModeMock accepts any credential and returns a configured
	// identity (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "google", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: google, mock)", v)
	}
}

// GoogleConfig contains the Google OIDC verifier configuration.
type GoogleConfig struct {
	ClientID    string `env:"CLIENT_ID"`
	IssuerURL   string `env:"ISSUER_URL"   envDefault:"https://accounts.google.com"`
	RedirectURL string `env:"REDIRECT_URL" envDefault:"http://localhost:8487/callback"`
	Scope       string `env:"SCOPE"        envDefault:"openid profile email"`
}

// DevAuthConfig controls the mock verifier identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Subject string `env:"SUBJECT" envDefault:"dev-subject"`
	Email   string `env:"EMAIL"   envDefault:"dev@example.com"`
	Name    string `env:"NAME"    envDefault:"Dev User"`
	Picture string `env:"PICTURE"`
}

// AuthConfig groups all federated-login configuration. Local credential
// login needs no configuration beyond the API endpoint.
type AuthConfig struct {
	// Mode determines which credential verifier to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"google"`

	// Google configuration (used when Mode=google).
	Google GoogleConfig `envPrefix:"GOOGLE_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}
