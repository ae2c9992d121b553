package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Issue("42", secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)

	ttl := time.Until(claims.ExpiresAt.Time)
	require.Greater(t, ttl, 55*time.Minute)
	require.LessOrEqual(t, ttl, AccessTokenTTL)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := Issue("42", []byte("secret-a"))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("secret-b"))
	require.Error(t, err)
}
