package fixedwindow

import (
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow allows `limit` calls per key in every `window`. The window of a
// key starts with its first call.
type FixedWindow struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewFixedWindow(limit int, w time.Duration) *FixedWindow {
	return &FixedWindow{
		clients: make(map[string]*window),
		limit:   limit,
		window:  w,
		now:     time.Now,
	}
}

// Allow reports whether the call for key fits in the current window. When it
// does not, the returned duration is the time left until the window resets.
func (l *FixedWindow) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, exists := l.clients[key]
	if !exists || !now.Before(w.resetAt) {
		l.clients[key] = &window{count: 1, resetAt: now.Add(l.window)}
		l.evict(now)
		return true, 0
	}

	if w.count < l.limit {
		w.count++
		return true, 0
	}

	return false, w.resetAt.Sub(now)
}

// evict drops finished windows so idle clients do not pile up.
func (l *FixedWindow) evict(now time.Time) {
	for key, w := range l.clients {
		if !now.Before(w.resetAt) {
			delete(l.clients, key)
		}
	}
}
