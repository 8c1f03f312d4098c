// Package app holds the application services: they load state through the
// domain ports, hand it to the analytics core and shape the results.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"weightgoal/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired or moved to another client.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrSetupDone is returned by CreateInitialUser once any account exists.
	ErrSetupDone = errors.New("users already exist")
)

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 24 * time.Hour

// AuthService handles authentication and session management.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{users: users, sessions: sessions, ttl: DefaultSessionTTL, now: time.Now}
}

// WithSessionTTL overrides the session lifetime; non-positive values are ignored.
func (s *AuthService) WithSessionTTL(ttl time.Duration) *AuthService {
	if ttl > 0 {
		s.ttl = ttl
	}
	return s
}

// SessionTTL returns the configured session lifetime.
func (s *AuthService) SessionTTL() time.Duration { return s.ttl }

// Login checks username and password and opens a session for the client.
func (s *AuthService) Login(ctx context.Context, username, password, userAgent, ip string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || user == nil || user.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.openSession(ctx, user.ID, userAgent, ip)
}

// LoginWithUser opens a session for a user already authenticated elsewhere
// (SSO), provisioning the account on first sight.
func (s *AuthService) LoginWithUser(ctx context.Context, username, userAgent, ip string) (string, error) {
	user, err := s.provision(ctx, username)
	if err != nil {
		return "", err
	}
	return s.openSession(ctx, user.ID, userAgent, ip)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession resolves a session token to its user. The session must be
// unexpired and used from the same user agent that created it.
func (s *AuthService) ValidateSession(ctx context.Context, token, userAgent string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if s.now().After(session.ExpiresAt) || session.UserAgent != userAgent {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ValidateForwardAuth trusts a username asserted by a fronting proxy
// (Remote-User) and returns the matching, possibly new, account.
func (s *AuthService) ValidateForwardAuth(ctx context.Context, remoteUser string) (*domain.User, error) {
	if remoteUser == "" {
		return nil, ErrUserNotFound
	}
	return s.provision(ctx, remoteUser)
}

// CreateInitialUser creates the first user if no users exist.
func (s *AuthService) CreateInitialUser(ctx context.Context, username, password string) error {
	if username == "" || len(password) < 8 {
		return fmt.Errorf("%w: username required and password must be at least 8 characters", ErrInvalidInput)
	}
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSetupDone
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, username, string(hash))
	return err
}

// PurgeExpired removes sessions past their expiry.
func (s *AuthService) PurgeExpired(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

func (s *AuthService) provision(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user != nil {
		return user, nil
	}
	user, err = s.users.Create(ctx, username, "")
	if err == nil {
		return user, nil
	}
	// A concurrent login may have created the account first.
	if user, gerr := s.users.GetByUsername(ctx, username); gerr == nil && user != nil {
		return user, nil
	}
	return nil, fmt.Errorf("create user: %w", err)
}

func (s *AuthService) openSession(ctx context.Context, userID int64, userAgent, ip string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(ctx, userID, token, userAgent, ip, s.now().Add(s.ttl)); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
