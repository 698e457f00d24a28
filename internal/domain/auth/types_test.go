package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	role, err := ParseRole("recruiter")
	require.NoError(t, err)
	assert.Equal(t, RoleRecruiter, role)

	role, err = ParseRole("candidate")
	require.NoError(t, err)
	assert.Equal(t, RoleCandidate, role)

	_, err = ParseRole("admin")
	require.Error(t, err)
	_, err = ParseRole("")
	require.Error(t, err)
}

func TestSession_Present(t *testing.T) {
	t.Parallel()

	assert.False(t, Session{}.Present())
	assert.True(t, Session{Token: "T1"}.Present())
}
