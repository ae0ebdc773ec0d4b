package agrisite

import (
	"sync"
	"time"
)

// ContentCache holds the in-memory copy of each public collection. It is
// disposable: any mutation invalidates the whole thing and the next read
// rebuilds every collection wholesale from the store. Counter columns are the
// only values updated in place, and the store owns those.
type ContentCache struct {
	mu            sync.RWMutex
	books         []Book
	courses       []Course
	posts         []BlogPost // published only
	commentCounts map[string]int
	fetched       time.Time
	ttl           time.Duration
	store         *Store
}

// NewContentCache creates a ContentCache backed by the given Store.
func NewContentCache(s *Store, ttl time.Duration) *ContentCache {
	return &ContentCache{store: s, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	return !c.fetched.IsZero() && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.books = nil
	c.courses = nil
	c.posts = nil
	c.commentCounts = nil
	c.fetched = time.Time{}
	c.mu.Unlock()
}

func (c *ContentCache) load() error {
	if c.valid() {
		return nil
	}
	books, err := c.store.ListBooks()
	if err != nil {
		return err
	}
	courses, err := c.store.ListCourses()
	if err != nil {
		return err
	}
	posts, err := c.store.ListPosts(true)
	if err != nil {
		return err
	}
	counts, err := c.store.CommentCounts()
	if err != nil {
		return err
	}
	c.books = books
	c.courses = courses
	c.posts = posts
	c.commentCounts = counts
	c.fetched = time.Now()
	return nil
}

// ensureLoaded refreshes the cache if stale. It tries a read lock first and
// only takes the write lock when a reload is needed.
func (c *ContentCache) ensureLoaded() error {
	c.mu.RLock()
	if c.valid() {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Books returns the cached book collection.
func (c *ContentCache) Books() ([]Book, error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.books, nil
}

// Courses returns the cached course collection.
func (c *ContentCache) Courses() ([]Course, error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.courses, nil
}

// Posts returns the cached published posts, newest first.
func (c *ContentCache) Posts() ([]BlogPost, error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.posts, nil
}

// PostBySlug returns a cached published post by slug.
func (c *ContentCache) PostBySlug(slug string) (BlogPost, error) {
	posts, err := c.Posts()
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}

// CommentCounts returns the cached per-post comment counts.
func (c *ContentCache) CommentCounts() (map[string]int, error) {
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.commentCounts, nil
}
