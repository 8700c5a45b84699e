// Package auth implements the authentication gate for the admin panel:
// password hashing, signed session tokens, cookie plumbing, and per-request
// user resolution. No session state is persisted server-side.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"portfolio/app/internal/content"
)

// ErrNotAuthenticated indicates the request carries no usable session. A
// missing cookie, an invalid or expired token, and a token for a deleted
// user are indistinguishable.
var ErrNotAuthenticated = eris.New("not authenticated")

// UserStore is the slice of the content repository the gate needs.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*content.User, error)
}

// Service resolves acting users from requests and validates credentials.
type Service struct {
	users  UserStore
	hasher *PasswordHasher
	tokens *TokenService
	logger *logrus.Logger
}

// NewService wires the auth gate with its dependencies.
func NewService(users UserStore, hasher *PasswordHasher, tokens *TokenService, logger *logrus.Logger) (*Service, error) {
	if users == nil {
		return nil, eris.New("user store is required")
	}
	if hasher == nil {
		return nil, eris.New("password hasher is required")
	}
	if tokens == nil {
		return nil, eris.New("token service is required")
	}

	return &Service{users: users, hasher: hasher, tokens: tokens, logger: logger}, nil
}

// Tokens exposes the token service for session establishment.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Authenticate validates a username/password pair. Any mismatch yields
// (nil, nil) without distinguishing an unknown username from a wrong
// password; the password is verified even for unknown users so both paths
// cost a bcrypt comparison.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*content.User, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" || password == "" {
		return nil, nil
	}

	user, err := s.users.GetUserByUsername(ctx, trimmed)
	if err != nil {
		return nil, eris.Wrap(err, "looking up user for authentication")
	}

	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	if !s.hasher.Verify(hash, password) || user == nil {
		return nil, nil
	}

	return user, nil
}

// dummyHash keeps the unknown-username path timing-comparable to a real
// verification. bcrypt hash of an unguessable throwaway value.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// CurrentUser resolves the acting user from the request's session cookie.
// Returns ErrNotAuthenticated when the cookie is missing, the token fails
// validation, or the subject no longer exists.
func (s *Service) CurrentUser(ctx context.Context, r *http.Request) (*content.User, error) {
	token := SessionTokenFromRequest(r)
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	subject, err := s.tokens.Decode(token)
	if err != nil {
		if s.logger != nil {
			s.logger.WithField("error", err.Error()).Debug("session token rejected")
		}
		return nil, ErrNotAuthenticated
	}

	user, err := s.users.GetUserByUsername(ctx, subject)
	if err != nil {
		return nil, eris.Wrap(err, "resolving session user")
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	return user, nil
}

// CurrentUserOptional resolves the acting user, treating any authentication
// failure as anonymous. Used by public pages that render differently for the
// admin.
func (s *Service) CurrentUserOptional(ctx context.Context, r *http.Request) *content.User {
	user, err := s.CurrentUser(ctx, r)
	if err != nil {
		return nil
	}
	return user
}
