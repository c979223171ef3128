// Package jwtmw issues and verifies HS256 bearer tokens and provides the gin
// middleware that protects authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an issued token when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	// ErrMissingSecret is returned when no signing key is configured.
	ErrMissingSecret = errors.New("jwt signing secret is not configured")

	// ErrInvalidToken is returned for any token that fails verification.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the payload carried by every issued token.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Config configures a Generator. Issuer and Audience are only written and
// checked when non-empty.
type Config struct {
	Secret   string
	TTL      time.Duration
	Issuer   string
	Audience string
}

// Generator signs and verifies tokens with a symmetric key.
type Generator struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	audience string
	now      func() time.Time
}

// NewGenerator creates a Generator. The secret is required.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Generator{
		secret:   []byte(cfg.Secret),
		ttl:      ttl,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}, nil
}

// Issue creates a signed token whose subject is username.
func (g *Generator) Issue(username string) (string, error) {
	now := g.now()
	claims := Claims{
		Name: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	if g.audience != "" {
		claims.Audience = jwt.ClaimStrings{g.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenStr and returns its claims. Tokens with a bad signature,
// a non-HS256 algorithm, or a missing or past expiry are rejected.
func (g *Generator) Verify(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}
	if g.audience != "" {
		opts = append(opts, jwt.WithAudience(g.audience))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
