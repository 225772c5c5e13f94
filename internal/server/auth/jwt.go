// Package auth implements token issuance/verification and password hashing
// for the server.
package auth

import (
	"errors"
	"time"

	"github.com/avlasov/fileshare/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the subject user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// TokenManager issues and verifies HS256-signed access tokens with a fixed
// TTL. Tokens are stateless: possession of a valid, unexpired token is
// sufficient proof of identity until expiry.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Tests use this to control expiry.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// Issue mints a signed token for the given user id, expiring after the TTL.
func (m *TokenManager) Issue(userID string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})

	return token.SignedString(m.secret)
}

// Verify parses and validates the token, returning the subject user id.
// Failures are one of common.ErrTokenMissing, common.ErrTokenExpired or
// common.ErrTokenMalformed so callers can tell the cases apart.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", common.ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrTokenMalformed
	}
	if !token.Valid {
		return "", common.ErrTokenMalformed
	}

	return claims.UserID, nil
}
