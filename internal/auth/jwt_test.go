package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenTampered(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = issuer.Verify(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	other := NewIssuer("other-secret", time.Minute)

	token, err := other.Issue("alice")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMalformed(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)

	_, err := issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
