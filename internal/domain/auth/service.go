package auth

import (
	"context"
	"strings"
)

// Service orchestrates credential verification and token issuance.
type Service struct {
	Store  StoreAPI
	Tokens *TokenService
}

func NewService(store StoreAPI, tokens *TokenService) *Service {
	return &Service{Store: store, Tokens: tokens}
}

// Login verifies the credential and issues a fresh token carrying the
// stored role as a claim.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.Store.FindByUsername(ctx, username)
	if err != nil {
		return Session{}, err
	}
	if !user.Enabled {
		return Session{}, ErrUserNotFound
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.Username, user.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		Username:  user.Username,
		Roles:     []string{user.Role},
		ExpiresIn: int64(s.Tokens.TTL().Seconds()),
	}, nil
}

// Register persists a new credential and returns an immediate session.
func (s *Service) Register(ctx context.Context, username, password, role string) (Session, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return Session{}, ErrInvalidUsername
	}

	taken, err := s.Store.UsernameTaken(ctx, username)
	if err != nil {
		return Session{}, err
	}
	if taken {
		return Session{}, ErrDuplicateUsername
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Session{}, err
	}
	if _, err := s.Store.Create(ctx, username, hash, role); err != nil {
		return Session{}, err
	}

	return s.Login(ctx, username, password)
}

// ValidateToken resolves a token to the identity it was issued for. The
// credential is reloaded so accounts disabled after issuance are rejected.
func (s *Service) ValidateToken(ctx context.Context, token string) (Identity, error) {
	subject, err := s.Tokens.Subject(token)
	if err != nil {
		return Identity{}, err
	}

	user, err := s.Store.FindByUsername(ctx, subject)
	if err != nil {
		return Identity{}, err
	}
	if !user.Enabled {
		return Identity{}, ErrUserNotFound
	}

	valid, err := s.Tokens.Valid(token, user.Username)
	if err != nil {
		return Identity{}, err
	}
	if !valid {
		return Identity{}, ErrTokenExpired
	}

	return Identity{
		Username:    user.Username,
		Role:        user.Role,
		Permissions: PermissionsForRole(user.Role),
	}, nil
}

// SetUserEnabled soft-disables or re-enables an account. Disabled users
// keep their row but fail login and token validation.
func (s *Service) SetUserEnabled(ctx context.Context, username string, enabled bool) error {
	return s.Store.SetEnabled(ctx, username, enabled)
}

func (s *Service) CheckUsername(ctx context.Context, username string) (bool, error) {
	taken, err := s.Store.UsernameTaken(ctx, username)
	if err != nil {
		return false, err
	}
	return !taken, nil
}
