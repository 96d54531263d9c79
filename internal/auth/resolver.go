package auth

import (
	"context"

	"contactly/internal/shared/middleware"
	"contactly/internal/users"
)

// UserLookup is the collaborator the resolver uses to map a token subject to
// a persisted user.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*users.User, error)
}

// Resolver validates bearer tokens and resolves them to user identities.
// Every protected operation passes through CurrentUser.
type Resolver struct {
	codec *Codec
	users UserLookup
}

func NewResolver(codec *Codec, lookup UserLookup) *Resolver {
	return &Resolver{
		codec: codec,
		users: lookup,
	}
}

// DecodeRefreshToken decodes a refresh token and returns its subject. Codec
// failures propagate verbatim; a wrong scope is rejected explicitly so an
// access token can never stand in for a refresh token.
func (r *Resolver) DecodeRefreshToken(tokenString string) (string, error) {
	claims, err := r.codec.Decode(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Scope != ScopeRefreshToken {
		return "", ErrInvalidScope
	}
	return claims.Subject, nil
}

// CurrentUser resolves an access token to the user it belongs to. Every
// failure mode, bad signature, expiry, wrong scope, missing subject, unknown
// user, collapses into ErrUnauthenticated so an unauthenticated caller
// learns nothing about which check failed.
func (r *Resolver) CurrentUser(ctx context.Context, tokenString string) (*users.User, error) {
	claims, err := r.codec.Decode(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if claims.Scope != ScopeAccessToken {
		return nil, ErrUnauthenticated
	}
	if claims.Subject == "" {
		return nil, ErrUnauthenticated
	}
	user, err := r.users.GetUserByEmail(ctx, claims.Subject)
	if err != nil || user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// AsUserResolver adapts the resolver to the middleware contract, which
// carries the authenticated user as an opaque context value so the middleware
// package stays independent of the users package.
func (r *Resolver) AsUserResolver() middleware.UserResolver {
	return resolverGate{resolver: r}
}

type resolverGate struct {
	resolver *Resolver
}

func (g resolverGate) CurrentUser(ctx context.Context, token string) (any, error) {
	user, err := g.resolver.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DecodeEmailToken decodes an email verification token and returns its
// subject. This path is reachable before authentication, so it surfaces its
// own failure class instead of the generic one.
func (r *Resolver) DecodeEmailToken(tokenString string) (string, error) {
	claims, err := r.codec.Decode(tokenString)
	if err != nil {
		return "", ErrInvalidVerificationToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidVerificationToken
	}
	return claims.Subject, nil
}
