package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/maxolivera/gophis-posts/internal/models"
	"github.com/maxolivera/gophis-posts/internal/storage"
)

const (
	listPostsByOwnerQuery = `SELECT id, text, user_id, created_at, updated_at FROM posts
WHERE user_id = $1 ORDER BY id ASC`

	getPostByIDAndOwnerQuery = `SELECT id, text, user_id, created_at, updated_at FROM posts
WHERE id = $1 AND user_id = $2`

	createPostQuery = `INSERT INTO posts (text, user_id) VALUES ($1, $2)
RETURNING id, text, user_id, created_at, updated_at`

	deletePostQuery = `DELETE FROM posts WHERE id = $1
RETURNING id, text, user_id, created_at, updated_at`
)

type PostgresPostRepository struct {
	db DBTX
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(&p.ID, &p.Text, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPostRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, storage.QueryTimeDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, listPostsByOwnerQuery, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostgresPostRepository) GetByIDAndOwner(ctx context.Context, postID, ownerID int64) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, storage.QueryTimeDuration)
	defer cancel()

	post, err := scanPost(r.db.QueryRow(ctx, getPostByIDAndOwnerQuery, postID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return post, nil
}

func (r *PostgresPostRepository) Create(ctx context.Context, ownerID int64, text string) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, storage.QueryTimeDuration)
	defer cancel()

	return scanPost(r.db.QueryRow(ctx, createPostQuery, text, ownerID))
}

func (r *PostgresPostRepository) Delete(ctx context.Context, postID int64) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, storage.QueryTimeDuration)
	defer cancel()

	post, err := scanPost(r.db.QueryRow(ctx, deletePostQuery, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return post, nil
}
