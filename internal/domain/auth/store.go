package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, role, enabled, created_at
    FROM users
    WHERE username = $1
  `, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.Enabled, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Store) Create(ctx context.Context, username, passwordHash, role string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, password_hash, role)
    VALUES ($1,$2,$3)
    RETURNING id, username, password_hash, role, enabled, created_at
  `, username, passwordHash, role).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.Enabled, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrDuplicateUsername
		}
		return User{}, err
	}
	return user, nil
}

func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE username = $1", username).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) SetEnabled(ctx context.Context, username string, enabled bool) error {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET enabled = $1 WHERE username = $2", enabled, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
