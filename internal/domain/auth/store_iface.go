package auth

import "context"

type StoreAPI interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, username, passwordHash, role string) (User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	SetEnabled(ctx context.Context, username string, enabled bool) error
}
