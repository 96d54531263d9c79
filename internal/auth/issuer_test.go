package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, codec *Codec) *Issuer {
	t.Helper()
	return NewIssuer(codec, testJWTConfig())
}

func TestIssueAccessTokenUsesDefaultTTL(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)

	issuedAt := time.Now().Truncate(time.Second)
	issuer.now = func() time.Time { return issuedAt }

	tokenString, err := issuer.IssueAccessToken("alice@example.com", 0)
	require.NoError(t, err)

	claims, err := codec.Decode(tokenString)
	require.NoError(t, err)
	assert.Equal(t, ScopeAccessToken, claims.Scope)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, issuedAt.Add(15*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestIssueAccessTokenHonorsExplicitTTL(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)

	issuedAt := time.Now().Truncate(time.Second)
	issuer.now = func() time.Time { return issuedAt }

	tokenString, err := issuer.IssueAccessToken("alice@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := codec.Decode(tokenString)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestIssueRefreshTokenScopeAndTTL(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)

	issuedAt := time.Now().Truncate(time.Second)
	issuer.now = func() time.Time { return issuedAt }

	tokenString, err := issuer.IssueRefreshToken("alice@example.com", 0)
	require.NoError(t, err)

	claims, err := codec.Decode(tokenString)
	require.NoError(t, err)
	assert.Equal(t, ScopeRefreshToken, claims.Scope)
	assert.Equal(t, issuedAt.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestIssueEmailTokenHasNoScope(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)

	issuedAt := time.Now().Truncate(time.Second)
	issuer.now = func() time.Time { return issuedAt }

	tokenString, err := issuer.IssueEmailToken("alice@example.com")
	require.NoError(t, err)

	claims, err := codec.Decode(tokenString)
	require.NoError(t, err)
	assert.Empty(t, claims.Scope)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, issuedAt.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}
