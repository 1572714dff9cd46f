package storage

import (
	"context"
	"errors"
	"time"

	"github.com/maxolivera/gophis-posts/internal/models"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrEmailUnavailable = errors.New("email is unavailable")
	QueryTimeDuration   = time.Second * 5
)

// Storage is the persistence gateway. Repositories never check who is asking;
// callers pass the owner they want the query scoped to.
type Storage struct {
	Posts PostRepository
	Users UserRepository
}

type PostRepository interface {
	// Posts of an owner in creation order
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Post, error)
	// Fetch a post only if it belongs to ownerID. ErrNotFound otherwise.
	GetByIDAndOwner(ctx context.Context, postID, ownerID int64) (*models.Post, error)
	// Stores a post
	Create(ctx context.Context, ownerID int64, text string) (*models.Post, error)
	// Deletes a post, returning what was removed. ErrNotFound if missing.
	Delete(ctx context.Context, postID int64) (*models.Post, error)
}

type UserRepository interface {
	// Fetch a user by ID. ErrNotFound if missing.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// Fetch a user and its password hash by email. Used for log in.
	GetByEmail(ctx context.Context, email string) (*models.UserWithPassword, error)
	// Stores a user. ErrEmailUnavailable if the email is taken.
	Create(ctx context.Context, email string, hashedPassword []byte) (*models.User, error)
}
