// internal/repository/postgres/user_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"alamin-service/internal/domain/user"
	xerrors "alamin-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername looks a user up case-insensitively.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
		SELECT id, username, name, role, password_hash, created_at
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`

	var u user.User
	err := r.db.Pool().QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", xerrors.ErrNotFound, username)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// Create inserts a new account. Fails with ErrConflict when the username is
// already taken, in any casing.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (username, name, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.Pool().QueryRow(ctx, query,
		u.Username, u.Name, u.Role, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %s is taken", xerrors.ErrConflict, u.Username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Count returns the number of accounts. Used to decide whether to seed the
// bootstrap manager.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
