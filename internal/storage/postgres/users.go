package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/maxolivera/gophis-posts/internal/models"
	"github.com/maxolivera/gophis-posts/internal/storage"
)

const (
	getUserByIDQuery = `SELECT id, email, created_at, updated_at FROM users WHERE id = $1`

	getUserByEmailQuery = `SELECT id, email, hashed_password, created_at, updated_at FROM users WHERE email = $1`

	createUserQuery = `INSERT INTO users (email, hashed_password) VALUES ($1, $2)
RETURNING id, email, created_at, updated_at`
)

type PostgresUserRepository struct {
	db DBTX
}

// Fetch a user by id
func (r PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, storage.QueryTimeDuration)
	defer cancel()

	var user models.User
	err := r.db.QueryRow(ctx, getUserByIDQuery, id).Scan(
		&user.ID,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// Fetch a user by email, password hash included
func (r PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.UserWithPassword, error) {
	ctx, cancel := context.WithTimeout(ctx, storage.QueryTimeDuration)
	defer cancel()

	var user models.UserWithPassword
	err := r.db.QueryRow(ctx, getUserByEmailQuery, email).Scan(
		&user.User.ID,
		&user.User.Email,
		&user.HashedPassword,
		&user.User.CreatedAt,
		&user.User.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// Stores a user
func (r PostgresUserRepository) Create(ctx context.Context, email string, hashedPassword []byte) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, storage.QueryTimeDuration)
	defer cancel()

	var user models.User
	err := r.db.QueryRow(ctx, createUserQuery, email, hashedPassword).Scan(
		&user.ID,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key" {
			return nil, storage.ErrEmailUnavailable
		}
		return nil, err
	}

	return &user, nil
}
