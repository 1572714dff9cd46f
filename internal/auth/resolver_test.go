package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxolivera/gophis-posts/internal/models"
	"github.com/maxolivera/gophis-posts/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupFunc func(ctx context.Context, id int64) (*models.User, error)

func (f lookupFunc) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return f(ctx, id)
}

func TestResolver_Resolve(t *testing.T) {
	a := newTestAuthenticator(time.Now())
	r := NewResolver(a)

	token, err := a.Issue(7, "old@example.com")
	require.NoError(t, err)

	t.Run("existing user", func(t *testing.T) {
		var asked int64
		lookup := lookupFunc(func(ctx context.Context, id int64) (*models.User, error) {
			asked = id
			return &models.User{ID: id, Email: "new@example.com"}, nil
		})

		identity, err := r.Resolve(context.Background(), token, lookup)
		require.NoError(t, err)
		assert.Equal(t, int64(7), asked)
		assert.Equal(t, models.Identity{UserID: 7, Email: "new@example.com"}, identity)
	})

	t.Run("invalid credential never reaches the lookup", func(t *testing.T) {
		lookup := lookupFunc(func(ctx context.Context, id int64) (*models.User, error) {
			t.Fatal("lookup must not be called")
			return nil, nil
		})

		_, err := r.Resolve(context.Background(), "garbage", lookup)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.NotErrorIs(t, err, ErrInvalidCredential, "codec reason must not leak through errors.Is")
	})

	t.Run("deleted user", func(t *testing.T) {
		lookup := lookupFunc(func(ctx context.Context, id int64) (*models.User, error) {
			return nil, storage.ErrNotFound
		})

		_, err := r.Resolve(context.Background(), token, lookup)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("lookup failure is not an auth failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		lookup := lookupFunc(func(ctx context.Context, id int64) (*models.User, error) {
			return nil, boom
		})

		_, err := r.Resolve(context.Background(), token, lookup)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})
}
