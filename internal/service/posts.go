package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/maxolivera/gophis-posts/internal/cache"
	"github.com/maxolivera/gophis-posts/internal/metrics"
	"github.com/maxolivera/gophis-posts/internal/models"
	"github.com/maxolivera/gophis-posts/internal/storage"
	"github.com/maxolivera/gophis-posts/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// The post does not exist or belongs to someone else. Callers cannot
	// tell which.
	ErrNotFound = errors.New("post not found")
	// The post passed the ownership check but storage failed to delete it.
	ErrDeleteFailed = errors.New("failed to delete post")
	ErrValidation   = errors.New("validation failed")
)

// PostService is the only way handlers reach posts. Every operation is scoped
// to the given Identity and keeps the per-user listing cache coherent.
type PostService struct {
	posts     storage.PostRepository
	cache     *cache.Storage
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    *zap.SugaredLogger
	group     singleflight.Group
}

func NewPostService(
	posts storage.PostRepository,
	c *cache.Storage,
	v *validation.Validator,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) *PostService {
	return &PostService{
		posts:     posts,
		cache:     c,
		validator: v,
		metrics:   m,
		logger:    logger,
	}
}

// ListPosts returns the posts of identity in creation order. The returned
// slice may be shared with the cache and other callers; do not modify it.
func (s *PostService) ListPosts(ctx context.Context, identity models.Identity) ([]models.Post, error) {
	start := time.Now()

	// 1. Check cache
	if posts, found := s.cache.Posts.Get(identity.UserID); found {
		s.metrics.CacheHit()
		s.logger.Infow("fetching posts", "user_id", identity.UserID, "cache hit", true, "total time", time.Since(start))
		return posts, nil
	}
	s.metrics.CacheMiss()

	// 2. Use storage instead. Concurrent misses of the same user share one
	// read, as long as no mutation happened between them.
	gen := s.cache.Posts.Generation(identity.UserID)
	key := strconv.FormatInt(identity.UserID, 10) + ":" + strconv.FormatUint(gen, 10)

	v, err, _ := s.group.Do(key, func() (any, error) {
		posts, err := s.posts.ListByOwner(context.WithoutCancel(ctx), identity.UserID)
		if err != nil {
			return nil, err
		}

		// 3. Update cache
		if !s.cache.Posts.Set(identity.UserID, posts, gen) {
			s.metrics.CacheDiscarded.Inc()
			s.logger.Debugw("posts changed while listing, not caching", "user_id", identity.UserID)
		}
		return posts, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing posts of user %d: %w", identity.UserID, err)
	}

	s.logger.Infow("fetching posts", "user_id", identity.UserID, "cache hit", false, "total time", time.Since(start))

	// 4. Return posts
	return v.([]models.Post), nil
}

// CreatePost stores text as a new post of identity.
func (s *PostService) CreatePost(ctx context.Context, identity models.Identity, text string) (*models.Post, error) {
	if err := s.validator.Var("text", text, validation.PostText); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	post, err := s.posts.Create(ctx, identity.UserID, text)
	// storage may have committed even if it reported an error
	s.invalidate(identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("error creating post for user %d: %w", identity.UserID, err)
	}

	return post, nil
}

// DeletePost removes a post of identity. ErrNotFound covers both a missing
// post and a post owned by another user.
func (s *PostService) DeletePost(ctx context.Context, identity models.Identity, postID int64) (bool, error) {
	if _, err := s.posts.GetByIDAndOwner(ctx, postID, identity.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("error fetching post %d: %w", postID, err)
	}

	_, err := s.posts.Delete(ctx, postID)
	s.invalidate(identity.UserID)
	if err != nil {
		return false, fmt.Errorf("%w: post %d: %v", ErrDeleteFailed, postID, err)
	}

	return true, nil
}

func (s *PostService) invalidate(userID int64) {
	s.cache.Posts.Invalidate(userID)
	s.metrics.CacheInvalidations.Inc()
}
