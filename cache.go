package main

import (
	"sync"
	"time"

	"inkpost/views"
)

// postCache is an in-memory TTL cache over the post listing. Post mutations
// call Invalidate so the next read reloads from the store.
type postCache struct {
	mu      sync.RWMutex
	posts   []views.BlogPost
	fetched time.Time
	ttl     time.Duration
	store   *store
}

// newPostCache creates a postCache backed by the given store.
func newPostCache(s *store, ttl time.Duration) *postCache {
	return &postCache{store: s, ttl: ttl}
}

func (c *postCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *postCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// ListPosts returns the post listing, reloading from the store when stale.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *postCache) ListPosts() ([]views.BlogPost, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []views.BlogPost{}
	}
	c.posts = posts
	c.fetched = time.Now()
	return posts, nil
}
