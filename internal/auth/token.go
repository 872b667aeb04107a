// internal/auth/token.go
//
// Signed bearer tokens for the admin surface.
//
// Context
// -------
// Login exchanges username/password for an HMAC-SHA256 JWT carrying the
// admin's id and username, valid for cfg.Auth.TokenTTL (24 h by default).
// Verification pins the signing method so a token claiming `none` or an
// asymmetric algorithm is rejected outright.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload.
type Claims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Signer issues and verifies tokens.  Safe for concurrent use.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner builds a Signer from the configured secret and lifetime.
func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Sign returns a fresh token for the given admin identity.
func (s *Signer) Sign(id int64, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:       id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims.  Expired,
// tampered, or foreign-algorithm tokens all return an error.
func (s *Signer) Verify(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}
