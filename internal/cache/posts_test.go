package cache

import (
	"testing"
	"time"

	"github.com/maxolivera/gophis-posts/internal/models"
	"github.com/maxolivera/gophis-posts/pkg/ttlcache"
	"github.com/stretchr/testify/assert"
)

func TestPostsKey(t *testing.T) {
	assert.Equal(t, "user_posts_1", PostsKey(1))
	assert.Equal(t, "user_posts_42", PostsKey(42))
	assert.Equal(t, "user_posts_1234567890123", PostsKey(1234567890123))
}

func TestPostTTLCache(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := ttlcache.New(ttlcache.WithClock[[]models.Post](func() time.Time { return now }))
	s := NewTTLStorage(c)

	posts := []models.Post{{ID: 1, Text: "hello", OwnerID: 1}}
	assert.True(t, s.Posts.Set(1, posts, s.Posts.Generation(1)))

	got, found := c.Get("user_posts_1")
	assert.True(t, found, "entry must live under the documented key")
	assert.Equal(t, posts, got)

	_, found = s.Posts.Get(2)
	assert.False(t, found)

	now = now.Add(PostsTimeExpiration)
	_, found = s.Posts.Get(1)
	assert.True(t, found)

	now = now.Add(time.Second)
	_, found = s.Posts.Get(1)
	assert.False(t, found, "entry must expire after five minutes")
}

func TestPostTTLCache_InvalidateBeatsSlowFetch(t *testing.T) {
	s := NewTTLStorage(ttlcache.New[[]models.Post]())

	gen := s.Posts.Generation(1)
	// a create happens while the listing is being read from storage
	s.Posts.Invalidate(1)

	assert.False(t, s.Posts.Set(1, []models.Post{{ID: 1}}, gen))
	_, found := s.Posts.Get(1)
	assert.False(t, found)
}
