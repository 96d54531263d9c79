package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactly/internal/users"
)

type fakeLookup struct {
	users map[string]*users.User
}

func (f *fakeLookup) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	if user, ok := f.users[email]; ok {
		return user, nil
	}
	return nil, ErrUserNotFound
}

func newTestResolver(t *testing.T, codec *Codec, known ...*users.User) *Resolver {
	t.Helper()
	lookup := &fakeLookup{users: make(map[string]*users.User)}
	for _, u := range known {
		lookup.users[u.Email] = u
	}
	return NewResolver(codec, lookup)
}

func testUser(email string) *users.User {
	return &users.User{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     email,
		Confirmed: true,
	}
}

func TestCurrentUserResolvesAccessToken(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	alice := testUser("alice@example.com")
	resolver := newTestResolver(t, codec, alice)

	tokenString, err := issuer.IssueAccessToken(alice.Email, 0)
	require.NoError(t, err)

	got, err := resolver.CurrentUser(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, alice.Email, got.Email)
}

func TestCurrentUserRejectsRefreshToken(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	alice := testUser("alice@example.com")
	resolver := newTestResolver(t, codec, alice)

	tokenString, err := issuer.IssueRefreshToken(alice.Email, 0)
	require.NoError(t, err)

	_, err = resolver.CurrentUser(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCurrentUserRejectsEmailToken(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	alice := testUser("alice@example.com")
	resolver := newTestResolver(t, codec, alice)

	tokenString, err := issuer.IssueEmailToken(alice.Email)
	require.NoError(t, err)

	_, err = resolver.CurrentUser(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCurrentUserRejectsExpiredToken(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	alice := testUser("alice@example.com")
	resolver := newTestResolver(t, codec, alice)

	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tokenString, err := issuer.IssueAccessToken(alice.Email, time.Second)
	require.NoError(t, err)

	_, err = resolver.CurrentUser(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCurrentUserRejectsMissingSubject(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	resolver := newTestResolver(t, codec)

	tokenString, err := issuer.IssueAccessToken("", 0)
	require.NoError(t, err)

	_, err = resolver.CurrentUser(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCurrentUserRejectsUnknownUser(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	resolver := newTestResolver(t, codec)

	tokenString, err := issuer.IssueAccessToken("ghost@example.com", 0)
	require.NoError(t, err)

	_, err = resolver.CurrentUser(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCurrentUserRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t)
	resolver := newTestResolver(t, codec)

	_, err := resolver.CurrentUser(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAsUserResolverCarriesTypedUser(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	alice := testUser("alice@example.com")
	resolver := newTestResolver(t, codec, alice)

	tokenString, err := issuer.IssueAccessToken(alice.Email, 0)
	require.NoError(t, err)

	principal, err := resolver.AsUserResolver().CurrentUser(context.Background(), tokenString)
	require.NoError(t, err)

	got, ok := principal.(*users.User)
	require.True(t, ok)
	assert.Equal(t, alice.Email, got.Email)
}

func TestAsUserResolverPropagatesFailure(t *testing.T) {
	codec := newTestCodec(t)
	resolver := newTestResolver(t, codec)

	_, err := resolver.AsUserResolver().CurrentUser(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestDecodeRefreshTokenReturnsSubject(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	resolver := newTestResolver(t, codec)

	tokenString, err := issuer.IssueRefreshToken("alice@example.com", 0)
	require.NoError(t, err)

	subject, err := resolver.DecodeRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestDecodeRefreshTokenRejectsAccessToken(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	resolver := newTestResolver(t, codec)

	tokenString, err := issuer.IssueAccessToken("alice@example.com", 0)
	require.NoError(t, err)

	_, err = resolver.DecodeRefreshToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestDecodeRefreshTokenPropagatesExpiry(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	resolver := newTestResolver(t, codec)

	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tokenString, err := issuer.IssueRefreshToken("alice@example.com", time.Second)
	require.NoError(t, err)

	_, err = resolver.DecodeRefreshToken(tokenString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeEmailTokenReturnsSubject(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	resolver := newTestResolver(t, codec)

	tokenString, err := issuer.IssueEmailToken("alice@example.com")
	require.NoError(t, err)

	subject, err := resolver.DecodeEmailToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestDecodeEmailTokenRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t)
	resolver := newTestResolver(t, codec)

	_, err := resolver.DecodeEmailToken("nonsense")
	assert.ErrorIs(t, err, ErrInvalidVerificationToken)
}

func TestDecodeEmailTokenRejectsExpired(t *testing.T) {
	codec := newTestCodec(t)
	issuer := newTestIssuer(t, codec)
	resolver := newTestResolver(t, codec)

	issuer.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	tokenString, err := issuer.IssueEmailToken("alice@example.com")
	require.NoError(t, err)

	_, err = resolver.DecodeEmailToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidVerificationToken)
}
