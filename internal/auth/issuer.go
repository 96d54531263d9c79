package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"contactly/internal/shared/config"
)

// Email verification links stay valid for a week.
const emailTokenTTL = 7 * 24 * time.Hour

// Issuer mints the three token kinds on top of the codec. A fresh claims set
// is built for every call; nothing is persisted here.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(codec *Codec, cfg config.JWTConfig) *Issuer {
	return &Issuer{
		codec:      codec,
		accessTTL:  cfg.AccessExpiresIn,
		refreshTTL: cfg.RefreshExpiresIn,
		now:        time.Now,
	}
}

// IssueAccessToken returns a short-lived token with scope "access_token".
// A ttl <= 0 selects the configured default (15 minutes).
func (i *Issuer) IssueAccessToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = i.accessTTL
	}
	return i.issue(subject, ScopeAccessToken, ttl)
}

// IssueRefreshToken returns a long-lived token with scope "refresh_token".
// A ttl <= 0 selects the configured default (7 days).
func (i *Issuer) IssueRefreshToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = i.refreshTTL
	}
	return i.issue(subject, ScopeRefreshToken, ttl)
}

// IssueEmailToken returns an email verification token. It carries no scope
// claim and its lifetime is fixed.
func (i *Issuer) IssueEmailToken(subject string) (string, error) {
	return i.issue(subject, "", emailTokenTTL)
}

func (i *Issuer) issue(subject, scope string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return i.codec.Encode(claims)
}
