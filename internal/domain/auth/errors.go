package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrNilSubject         = errors.New("expected subject must not be empty")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidUsername    = errors.New("username must be 3-50 characters")
)
