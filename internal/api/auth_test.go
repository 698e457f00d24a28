package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrsystem/hr-console/internal/domain/auth"
	"github.com/hrsystem/hr-console/internal/ports"
)

func decodeBody(t *testing.T, r *http.Request) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestClient_Login_Success(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login/", r.URL.Path)

		body := decodeBody(t, r)
		assert.Equal(t, "reclutador@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"status":  true,
			"message": "Bienvenido",
			"data": map[string]any{
				"token": "T1",
				"user": map[string]any{
					"id":              7,
					"name":            "Laura",
					"email":           "reclutador@example.com",
					"role":            "recruiter",
					"profile_picture": "https://pic.example/7.png",
				},
			},
		})
	})

	res, err := client.Login(context.Background(), "reclutador@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "T1", res.Token)
	assert.Equal(t, "7", res.Identity.ID)
	assert.Equal(t, "Laura", res.Identity.DisplayName)
	assert.Equal(t, auth.RoleRecruiter, res.Identity.Role)
	assert.Equal(t, "https://pic.example/7.png", res.Identity.ProfilePicture)
}

func TestClient_Login_RequiresCredentials(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("the API must not be contacted with empty credentials")
	})

	_, err := client.Login(context.Background(), "", "pw")
	require.Error(t, err)
	_, err = client.Login(context.Background(), "a@b.c", "")
	require.Error(t, err)
}

func TestClient_Login_MissingToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"status": true,
			"data":   map[string]any{"user": map[string]any{"id": 1, "role": "candidate"}},
		})
	})

	_, err := client.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
}

func TestClient_Profile_NestedUser(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"status": true,
			"data": map[string]any{
				"user": map[string]any{
					"user_id":  "42",
					"username": "pcruz",
					"email":    "p@example.com",
					"role":     "candidate",
				},
			},
		})
	})

	ident, err := client.Profile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "42", ident.ID)
	// No display name in the payload; username is the fallback.
	assert.Equal(t, "pcruz", ident.DisplayName)
	assert.Equal(t, auth.RoleCandidate, ident.Role)
}

// The flattened payload shape (user fields at the top of data) is accepted
// alongside the nested one.
func TestClient_Profile_FlattenedUser(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"status": true,
			"data": map[string]any{
				"id":    3,
				"name":  "Ana",
				"email": "ana@example.com",
				"role":  "recruiter",
			},
		})
	})

	ident, err := client.Profile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "3", ident.ID)
	assert.Equal(t, "Ana", ident.DisplayName)
	assert.Equal(t, auth.RoleRecruiter, ident.Role)
}

func TestClient_Profile_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data any
	}{
		{name: "missing role", data: map[string]any{"user": map[string]any{"id": 1, "name": "X"}}},
		{name: "unknown role", data: map[string]any{"user": map[string]any{"id": 1, "role": "admin"}}},
		{name: "payload not an object", data: []any{"user"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, http.StatusOK, map[string]any{"status": true, "data": tc.data})
			})

			_, err := client.Profile(context.Background(), "tok")
			require.ErrorIs(t, err, ErrMalformedProfile)
		})
	}
}

func TestClient_RegisterFederated_Body(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/register/", r.URL.Path)

		body := decodeBody(t, r)
		assert.Equal(t, "g@example.com", body["email"])
		assert.Equal(t, "google", body["auth_type"])
		assert.Equal(t, "sub-99", body["google_id"])
		assert.Equal(t, "G User", body["username"])
		assert.Equal(t, "candidate", body["role"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"status": "success",
			"data": map[string]any{
				"token": "fed-tok",
				"user":  map[string]any{"id": 5, "name": "G User", "role": "candidate"},
			},
		})
	})

	claims := auth.FederatedClaims{Subject: "sub-99", Email: "g@example.com", Name: "G User"}
	res, err := client.RegisterFederated(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "fed-tok", res.Token)
	assert.Equal(t, auth.RoleCandidate, res.Identity.Role)
}

func TestClient_Register_LocalBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       ports.RegisterInput
		expectToken bool
	}{
		{
			name: "candidate omits the verification token",
			input: ports.RegisterInput{
				Email:    "c@example.com",
				Password: "pw",
				Username: "cand",
				Role:     auth.RoleCandidate,
			},
			expectToken: false,
		},
		{
			name: "recruiter carries the verification token",
			input: ports.RegisterInput{
				Email:             "r@example.com",
				Password:          "pw",
				Username:          "rec",
				Role:              auth.RoleRecruiter,
				VerificationToken: "vt-1",
			},
			expectToken: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				body := decodeBody(t, r)
				assert.Equal(t, "local", body["auth_type"])
				assert.Equal(t, "active", body["status"])
				assert.Equal(t, string(tc.input.Role), body["role"])
				if tc.expectToken {
					assert.Equal(t, "vt-1", body["verificationToken"])
				} else {
					assert.NotContains(t, body, "verificationToken")
				}
				writeJSON(t, w, http.StatusCreated, map[string]any{
					"status":  true,
					"message": "Usuario registrado",
				})
			})

			require.NoError(t, client.Register(context.Background(), tc.input))
		})
	}
}

func TestClient_Logout_PostsWithToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/logout/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{"status": true, "message": "Sesión cerrada"})
	})

	require.NoError(t, client.Logout(context.Background(), "tok"))
}
