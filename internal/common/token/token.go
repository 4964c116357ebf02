// Package token issues and checks the bearer tokens that mark a caller as
// the presenter of a session.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/golang-jwt/jwt/v4"
)

const presenterAudience = "presenter"

var (
	// ErrInvalidToken is returned for tokens that fail to parse or verify
	ErrInvalidToken = errors.New("invalid presenter token")

	// ErrWrongSession is returned for a valid token minted for another session
	ErrWrongSession = errors.New("presenter token belongs to another session")
)

//go:generate mockgen -package=mocks -destination=mocks/mock_issuer.go github.com/KirkDiggler/lectern/internal/common/token Issuer

// Issuer mints and verifies presenter tokens bound to a session code
type Issuer interface {
	Issue(code string) (string, error)
	Verify(code, token string) error
}

// Config holds configuration for the JWT issuer
type Config struct {
	// Secret signs tokens with HS256
	Secret string

	// TTL is how long a token stays valid, 12h when zero
	TTL time.Duration

	Clock clock.Clock
}

// JWTIssuer implements Issuer with HS256 signed JWTs
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// NewJWT creates a new JWT backed issuer
func NewJWT(cfg *Config) (*JWTIssuer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Secret == "" {
		return nil, errors.New("token secret cannot be empty")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	c := cfg.Clock
	if c == nil {
		c = &clock.DefaultClock{}
	}

	return &JWTIssuer{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		clock:  c,
	}, nil
}

// Issue mints a presenter token for the session code
func (i *JWTIssuer) Issue(code string) (string, error) {
	now := i.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   code,
		Audience:  jwt.ClaimStrings{presenterAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign presenter token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature, expiry and that it was minted for code
func (i *JWTIssuer) Verify(code, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	if !claims.VerifyAudience(presenterAudience, true) {
		return ErrInvalidToken
	}
	if claims.Subject != code {
		return ErrWrongSession
	}
	return nil
}
