package core

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateEmail      = errors.New("email already in use")
	ErrInvalidDays         = errors.New("days must be positive")
	ErrInsufficientBalance = errors.New("insufficient vacation balance")
)
