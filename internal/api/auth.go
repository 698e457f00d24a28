package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/hrsystem/hr-console/internal/domain/auth"
	"github.com/hrsystem/hr-console/internal/ports"
)

// ErrMalformedProfile is returned when a profile payload cannot be
// normalized into an Identity, most importantly when it carries no role.
var ErrMalformedProfile = errors.New("malformed profile payload")

// Compile-time conformance to the gateway port.
var _ ports.AuthGateway = (*Client)(nil)

// identityExprs are the JMESPath candidates for locating the user object
// inside a response payload, most-specific first. The API nests the user
// under "user"; the flattened form is accepted as a migration-safety
// measure.
var identityExprs = []string{"user", "@"}

// Login exchanges local credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	if email == "" || password == "" {
		return ports.LoginResult{}, errors.New("email and password are required")
	}

	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/login/", "", body)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	return loginResultFromEnvelope(env)
}

// RegisterFederated forwards verified federated claims to the registration
// endpoint, which registers-or-logs-in the account and returns a token.
func (c *Client) RegisterFederated(ctx context.Context, claims auth.FederatedClaims) (ports.LoginResult, error) {
	body := map[string]string{
		"email":           claims.Email,
		"auth_type":       "google",
		"google_id":       claims.Subject,
		"profile_picture": claims.Picture,
		"username":        claims.Name,
		"role":            string(auth.RoleCandidate),
	}
	env, err := c.do(ctx, http.MethodPost, "/register/", "", body)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("federated register: %w", err)
	}
	return loginResultFromEnvelope(env)
}

// Register creates a local account. Recruiter registration additionally
// carries the verification token. No session token is produced.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	body := map[string]string{
		"email":     in.Email,
		"password":  in.Password,
		"username":  in.Username,
		"role":      string(in.Role),
		"auth_type": "local",
		"status":    "active",
	}
	if in.Role == auth.RoleRecruiter {
		body["verificationToken"] = in.VerificationToken
	}
	if _, err := c.do(ctx, http.MethodPost, "/register/", "", body); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Logout invalidates the token server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	if _, err := c.do(ctx, http.MethodPost, "/logout/", token, map[string]string{}); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Profile resolves a token into the identity it belongs to.
func (c *Client) Profile(ctx context.Context, token string) (auth.Identity, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/", token, nil)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("fetch profile: %w", err)
	}

	payload, err := decodePayload(env)
	if err != nil {
		return auth.Identity{}, err
	}
	return normalizeIdentity(payload)
}

func loginResultFromEnvelope(env envelope) (ports.LoginResult, error) {
	payload, err := decodePayload(env)
	if err != nil {
		return ports.LoginResult{}, err
	}

	tokenVal, err := jmespath.Search("token", payload)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("extract token: %w", err)
	}
	token, ok := tokenVal.(string)
	if !ok || token == "" {
		return ports.LoginResult{}, errors.New("login response carries no token")
	}

	ident, err := normalizeIdentity(payload)
	if err != nil {
		return ports.LoginResult{}, err
	}
	return ports.LoginResult{Token: token, Identity: ident}, nil
}

func decodePayload(env envelope) (any, error) {
	if len(env.Data) == 0 {
		return nil, ErrMalformedProfile
	}
	var payload any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return payload, nil
}

// normalizeIdentity locates the user object in the payload and maps it to
// the Identity shape. A candidate without a role never matches; a payload
// where no candidate matches is malformed.
func normalizeIdentity(payload any) (auth.Identity, error) {
	for _, expr := range identityExprs {
		result, err := jmespath.Search(expr, payload)
		if err != nil {
			continue
		}
		user, ok := result.(map[string]any)
		if !ok {
			continue
		}
		roleStr, _ := user["role"].(string)
		if roleStr == "" {
			continue
		}

		role, err := auth.ParseRole(roleStr)
		if err != nil {
			return auth.Identity{}, fmt.Errorf("%w: %v", ErrMalformedProfile, err)
		}

		name := stringField(user, "name")
		if name == "" {
			name = stringField(user, "username")
		}

		return auth.Identity{
			ID:             idField(user),
			DisplayName:    name,
			Email:          stringField(user, "email"),
			Role:           role,
			ProfilePicture: stringField(user, "profile_picture"),
		}, nil
	}
	return auth.Identity{}, ErrMalformedProfile
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// idField tolerates the identifier arriving as a JSON number or string,
// under either "id" or "user_id".
func idField(m map[string]any) string {
	for _, key := range []string{"id", "user_id"} {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		}
	}
	return ""
}
