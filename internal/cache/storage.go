package cache

import (
	"time"

	"github.com/maxolivera/gophis-posts/internal/models"
)

type Storage struct {
	Posts interface {
		// Cached posts of a user, nil and false on a miss
		Get(userID int64) ([]models.Post, bool)
		// Generation of the user's entry, to be taken before reading storage
		Generation(userID int64) uint64
		// Stores posts unless the entry was invalidated after gen
		Set(userID int64, posts []models.Post, gen uint64) bool
		// Drops the user's entry
		Invalidate(userID int64)
		Clear()
	}
}

const PostsTimeExpiration = 5 * time.Minute
