package cache

import (
	"strconv"

	"github.com/maxolivera/gophis-posts/internal/models"
	"github.com/maxolivera/gophis-posts/pkg/ttlcache"
)

func NewTTLStorage(c *ttlcache.Cache[[]models.Post]) *Storage {
	return &Storage{
		Posts: &PostTTLCache{c},
	}
}

// PostsKey is the cache key of a user's post listing.
func PostsKey(userID int64) string {
	return "user_posts_" + strconv.FormatInt(userID, 10)
}

type PostTTLCache struct {
	c *ttlcache.Cache[[]models.Post]
}

func (p PostTTLCache) Get(userID int64) ([]models.Post, bool) {
	return p.c.Get(PostsKey(userID))
}

func (p PostTTLCache) Generation(userID int64) uint64 {
	return p.c.Generation(PostsKey(userID))
}

func (p PostTTLCache) Set(userID int64, posts []models.Post, gen uint64) bool {
	return p.c.SetIfGeneration(PostsKey(userID), posts, PostsTimeExpiration, gen)
}

func (p PostTTLCache) Invalidate(userID int64) {
	p.c.Invalidate(PostsKey(userID))
}

func (p PostTTLCache) Clear() {
	p.c.Clear()
}
