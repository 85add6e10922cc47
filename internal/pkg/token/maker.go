// Package token issues and verifies HS256-signed JWTs carrying a username
// and role.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alshadows/product-catalog/internal/core/domain"
)

const defaultTTL = 10 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the claims set embedded in every issued token.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Maker signs and verifies tokens with a shared secret.
type Maker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewMaker(secret string, ttl time.Duration) *Maker {
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &Maker{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token whose subject is username.
func (m *Maker) Issue(username string, role domain.Role) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature and expiry of raw and returns its claims.
func (m *Maker) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Principal converts verified claims into the identity passed to the core.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{Username: c.Subject, Role: c.Role}
}
