package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"contactly/internal/shared/config"
)

// Token scopes distinguishing access and refresh tokens. Email verification
// tokens carry no scope claim at all.
const (
	ScopeAccessToken  = "access_token"
	ScopeRefreshToken = "refresh_token"
)

const tokenIssuer = "contactly"

var (
	ErrTokenMalformed           = errors.New("malformed token")
	ErrInvalidSignature         = errors.New("invalid token signature")
	ErrTokenExpired             = errors.New("token expired")
	ErrInvalidScope             = errors.New("invalid scope for token")
	ErrUnauthenticated          = errors.New("could not validate credentials")
	ErrInvalidVerificationToken = errors.New("invalid token for email verification")
)

// Claims is the signed payload shared by all three token kinds. Subject is
// the user's email, the stable identity key for every lookup.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Codec encodes and decodes signed claim sets. Signature and expiry are both
// self-contained in the token; Decode consults no external state.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
}

// NewCodec builds a codec from the JWT config. A missing secret or an
// unknown/non-HMAC algorithm is a startup error, not a per-request one.
func NewCodec(cfg config.JWTConfig) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt: signing secret is required")
	}
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("jwt: unknown signing algorithm %q", cfg.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("jwt: algorithm %q is not an HMAC method", cfg.Algorithm)
	}
	return &Codec{
		secret: []byte(cfg.Secret),
		method: method,
	}, nil
}

func (c *Codec) Encode(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(c.method, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: signing failed: %w", err)
	}
	return signed, nil
}

// Decode parses and verifies a token string. Expiry is checked here as part
// of decoding, not as a separate step.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidSignature
	}
	return claims, nil
}

// classifyParseError maps jwt/v4 validation errors onto the package
// taxonomy so callers can switch on sentinels.
func classifyParseError(err error) error {
	var vErr *jwt.ValidationError
	if !errors.As(err, &vErr) {
		return ErrTokenMalformed
	}
	switch {
	case vErr.Errors&jwt.ValidationErrorMalformed != 0:
		return ErrTokenMalformed
	case vErr.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0:
		return ErrTokenExpired
	case vErr.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
		return ErrInvalidSignature
	default:
		return ErrTokenMalformed
	}
}
