package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSessionRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	value, err := IssueAdminSession("ops@slydes.app")
	require.NoError(t, err)

	email, err := ValidateAdminSession(value)
	require.NoError(t, err)
	assert.Equal(t, "ops@slydes.app", email)
}

func TestAdminSessionTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	value, err := IssueAdminSession("ops@slydes.app")
	require.NoError(t, err)

	_, err = ValidateAdminSession(value + "x")
	assert.Error(t, err)
}

func TestAdminSessionWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	value, err := IssueAdminSession("ops@slydes.app")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ValidateAdminSession(value)
	assert.Error(t, err)
}

func TestAdminSessionExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := jwt.MapClaims{
		"email": "ops@slydes.app",
		"role":  "admin",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateAdminSession(value)
	assert.Error(t, err)
}

func TestUserTokenIsNotAdminSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	value, err := IssueUserToken("uid-1", "owner@cafe.test", "Owner", "")
	require.NoError(t, err)

	_, err = ValidateAdminSession(value)
	assert.Error(t, err)
}
