package memory

import (
	"context"
	"testing"

	"github.com/maxolivera/gophis-posts/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_Users(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	u, err := s.Users.Create(ctx, "a@example.com", []byte("hash"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = s.Users.Create(ctx, "a@example.com", []byte("other"))
	assert.ErrorIs(t, err, storage.ErrEmailUnavailable)

	got, err := s.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	withPass, err := s.Users.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("hash"), withPass.HashedPassword)

	_, err = s.Users.GetByID(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.Users.GetByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMemoryStorage_PostsAreScopedByOwner(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	a, _ := s.Users.Create(ctx, "a@example.com", nil)
	b, _ := s.Users.Create(ctx, "b@example.com", nil)

	p1, err := s.Posts.Create(ctx, a.ID, "first")
	require.NoError(t, err)
	_, err = s.Posts.Create(ctx, b.ID, "other")
	require.NoError(t, err)
	p3, err := s.Posts.Create(ctx, a.ID, "second")
	require.NoError(t, err)

	posts, err := s.Posts.ListByOwner(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p1.ID, posts[0].ID)
	assert.Equal(t, p3.ID, posts[1].ID)

	_, err = s.Posts.GetByIDAndOwner(ctx, p1.ID, b.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	deleted, err := s.Posts.Delete(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", deleted.Text)

	_, err = s.Posts.Delete(ctx, p1.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	posts, err = s.Posts.ListByOwner(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestMemoryStorage_CreatePostRequiresOwner(t *testing.T) {
	s := NewMemoryStorage()
	_, err := s.Posts.Create(context.Background(), 42, "orphan")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
