package memory

import (
	"context"
	"sync"
	"time"

	"github.com/maxolivera/gophis-posts/internal/models"
	"github.com/maxolivera/gophis-posts/internal/storage"
)

// NewMemoryStorage keeps everything in process. Used for local runs
// (STORAGE=memory) and tests.
func NewMemoryStorage() *storage.Storage {
	db := &db{
		users:  make(map[int64]*models.UserWithPassword),
		emails: make(map[string]int64),
		posts:  make(map[int64]*models.Post),
		now:    func() time.Time { return time.Now().UTC() },
	}
	return &storage.Storage{
		Posts: &MemoryPostRepository{db},
		Users: &MemoryUserRepository{db},
	}
}

type db struct {
	mu         sync.RWMutex
	users      map[int64]*models.UserWithPassword
	emails     map[string]int64
	posts      map[int64]*models.Post
	lastUserID int64
	lastPostID int64
	now        func() time.Time
}

type MemoryUserRepository struct {
	db *db
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, found := r.db.users[id]
	if !found {
		return nil, storage.ErrNotFound
	}
	user := u.User
	return &user, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.UserWithPassword, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, found := r.db.emails[email]
	if !found {
		return nil, storage.ErrNotFound
	}
	u := *r.db.users[id]
	return &u, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, email string, hashedPassword []byte) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, taken := r.db.emails[email]; taken {
		return nil, storage.ErrEmailUnavailable
	}

	r.db.lastUserID++
	now := r.db.now()
	u := &models.UserWithPassword{
		User: models.User{
			ID:        r.db.lastUserID,
			Email:     email,
			CreatedAt: now,
			UpdatedAt: now,
		},
		HashedPassword: hashedPassword,
	}
	r.db.users[u.User.ID] = u
	r.db.emails[email] = u.User.ID

	user := u.User
	return &user, nil
}

type MemoryPostRepository struct {
	db *db
}

func (r *MemoryPostRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	// ids only grow, so walking them in order gives creation order
	posts := []models.Post{}
	for id := int64(1); id <= r.db.lastPostID; id++ {
		p, found := r.db.posts[id]
		if found && p.OwnerID == ownerID {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

func (r *MemoryPostRepository) GetByIDAndOwner(ctx context.Context, postID, ownerID int64) (*models.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, found := r.db.posts[postID]
	if !found || p.OwnerID != ownerID {
		return nil, storage.ErrNotFound
	}
	post := *p
	return &post, nil
}

func (r *MemoryPostRepository) Create(ctx context.Context, ownerID int64, text string) (*models.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, found := r.db.users[ownerID]; !found {
		return nil, storage.ErrNotFound
	}

	r.db.lastPostID++
	now := r.db.now()
	p := &models.Post{
		ID:        r.db.lastPostID,
		Text:      text,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.db.posts[p.ID] = p

	post := *p
	return &post, nil
}

func (r *MemoryPostRepository) Delete(ctx context.Context, postID int64) (*models.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, found := r.db.posts[postID]
	if !found {
		return nil, storage.ErrNotFound
	}
	delete(r.db.posts, postID)
	return p, nil
}
