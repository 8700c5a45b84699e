package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
)

const tokenIssuer = "portfolio"

// TokenService issues and validates signed session tokens. Tokens are HS256
// JWTs carrying the admin username as subject and an absolute expiration;
// there is no unsigned fallback.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, eris.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, eris.New("token ttl must be positive")
	}

	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime, which also bounds the session cookie.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token for the given subject using the configured lifetime.
func (s *TokenService) Issue(subject string) (string, error) {
	return s.IssueWithTTL(subject, s.ttl)
}

// IssueWithTTL creates a signed token with an explicit lifetime. Exposed so
// expiry behaviour can be exercised without a controllable clock.
func (s *TokenService) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", eris.New("token subject is required")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", eris.Wrap(err, "signing token")
	}

	return signed, nil
}

// ErrInvalidToken covers every validation failure: bad signature, expiry,
// malformed input. Callers never learn which check failed.
var ErrInvalidToken = eris.New("invalid token")

// Decode verifies the token's signature and expiration and returns its subject.
func (s *TokenService) Decode(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, eris.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", eris.Wrap(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
