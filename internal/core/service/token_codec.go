package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// ClaimNames names the two custom claims carried by issued tokens. They are
// fixed per deployment and shared by issuance and extraction.
type ClaimNames struct {
	Username string
	Roles    string
}

var registeredClaims = map[string]struct{}{
	"iss": {}, "sub": {}, "aud": {}, "exp": {}, "nbf": {}, "iat": {}, "jti": {},
}

func (n ClaimNames) validate() error {
	if n.Username == "" || n.Roles == "" {
		return errors.New("claim names must not be empty")
	}
	if n.Username == n.Roles {
		return errors.New("username and roles claims must differ")
	}
	for _, name := range []string{n.Username, n.Roles} {
		if _, reserved := registeredClaims[name]; reserved {
			return fmt.Errorf("claim name %q is reserved", name)
		}
	}
	return nil
}

// TokenCodec issues and verifies HS256 bearer tokens. The secret is set once
// at construction and never changes.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
	claims   ClaimNames
}

func NewTokenCodec(secret string, lifetime time.Duration, claims ClaimNames) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token codec: secret is required")
	}
	if lifetime <= 0 {
		return nil, errors.New("token codec: lifetime must be positive")
	}
	if err := claims.validate(); err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}
	return &TokenCodec{
		secret:   []byte(secret),
		lifetime: lifetime,
		claims:   claims,
	}, nil
}

// Lifetime returns how long issued tokens stay valid.
func (c *TokenCodec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue signs a token for the given identity, valid from now for the
// configured lifetime.
func (c *TokenCodec) Issue(userID int, username string, roles []string, now time.Time) (string, error) {
	if roles == nil {
		roles = []string{}
	}
	claims := jwt.MapClaims{
		"sub":             strconv.Itoa(userID),
		c.claims.Username: username,
		c.claims.Roles:    roles,
		"iat":             now.Unix(),
		"exp":             now.Add(c.lifetime).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token as of now and returns its
// claims. Every failure wraps domain.ErrInvalidToken; the jwt cause stays in
// the chain. Tokens issued in the future are accepted.
func (c *TokenCodec) Verify(token string, now time.Time) (jwt.MapClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	return claims, nil
}
