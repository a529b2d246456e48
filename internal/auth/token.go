// Package auth implements stateless token issuance and validation, and
// resolves request credentials into principals.
package auth

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed or its signature
// does not verify under the configured secret.
var ErrInvalidToken = errors.New("invalid token")

// TokenService creates and validates signed, time-bounded identity tokens.
// The signing secret is fixed for the lifetime of the process.
type TokenService struct {
	// key is the HMAC key: the base64 encoding of the configured secret.
	key      []byte
	lifetime time.Duration
}

// NewTokenService builds a TokenService signing with HS256 over the base64
// encoding of secret. Tokens issued via Issue expire after lifetime.
func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{
		key:      []byte(base64.StdEncoding.EncodeToString([]byte(secret))),
		lifetime: lifetime,
	}
}

// Issue creates a token for subject valid from now until now plus the
// configured lifetime.
func (s *TokenService) Issue(subject string, now time.Time) (string, error) {
	return s.IssueWindow(subject, now, now.Add(s.lifetime))
}

// IssueWindow creates a token for subject with an explicit validity window.
// issued-at and not-before are both set to notBefore.
func (s *TokenService) IssueWindow(subject string, notBefore, expiration time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(notBefore),
		NotBefore: jwt.NewNumericDate(notBefore),
		ExpiresAt: jwt.NewNumericDate(expiration),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// ResolveSubject returns the subject claim of token. It fails with
// ErrInvalidToken when the token is malformed or mis-signed; the validity
// window is not checked here.
func (s *TokenService) ResolveSubject(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// IsCurrentlyValid reports whether token verifies under the secret and now
// lies within [not-before, expiration). Malformed, mis-signed, expired and
// not-yet-valid tokens all yield false, never an error.
func (s *TokenService) IsCurrentlyValid(token string, now time.Time) bool {
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	return err == nil
}

func (s *TokenService) keyFunc(*jwt.Token) (interface{}, error) {
	return s.key, nil
}
