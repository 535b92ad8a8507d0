package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffdesk/internal/domain/auth"
)

// SeedAdmin creates the bootstrap admin account if no user with that
// username exists. The default development password is password123.
func SeedAdmin(ctx context.Context, pool *pgxpool.Pool, username, password string) error {
	if password == "" {
		password = "password123"
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE username = $1", username).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO users (username, password_hash, role, enabled) VALUES ($1, $2, $3, TRUE)",
		username, hash, auth.RoleAdmin)
	if err != nil {
		return err
	}

	slog.Info("seeded admin user", "username", username)
	return nil
}
