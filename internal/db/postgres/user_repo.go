package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Chirp/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (id, created_at)
		VALUES ($1, $2)
		RETURNING id, created_at`

	created := &users.User{}
	err := r.db.QueryRowContext(ctx, query, user.ID, user.CreatedAt).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, users.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created.CreatedAt = created.CreatedAt.UTC()
	return created, nil
}

// GetByID retrieves a user by id
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	user := &users.User{}
	query := `SELECT id, created_at FROM users WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

// Exists reports whether a user with the id is stored
func (r *postgresUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}
